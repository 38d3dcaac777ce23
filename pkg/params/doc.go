/*
Package params implements the parameter dictionary attached to an assembly and
the immutable snapshot taken from it for the duration of one expansion.

Lookups distinguish an absent key from a present empty value. Values are
loosely typed (strings, numbers, booleans, arrays) and are coerced on read.
*/
package params

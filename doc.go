// Package pdf implements the tagged-union PostScript/PDF object model shared
// by the token lexer, the stack parser, and the content-stream interpreter.
//
// This package only covers the object model and the small amount of object
// resolution machinery (Getter, Resolve, the GetXxx family) needed to read
// already-parsed PDF objects. It does not parse cross-reference tables,
// decrypt files, or write PDF files: those concerns belong to an upstream
// document layer that hands already-resolved objects to this module.
//
// The object types are:
//
//	Null
//	Boolean
//	Integer
//	Real
//	Name
//	Operator
//	String
//	Array
//	Dict
//	Reference
//	*Stream
//
// All of these implement the Object interface.
package pdf

// Package annotate injects explanatory comments into YAML documents by line
// text.
//
// It is not a YAML parser. A [RuleTable] maps lines to comment texts, and
// [Annotator.Annotate] inserts each rule's comments directly above every line
// it matches, after prepending the table's header. Source lines are never
// changed, reordered, or removed, so deleting the injected lines restores
// the input byte for byte ([Result.Original]).
//
// # Rules
//
// A [Rule] matches either an exact line ([Rule.Line]) or a regular
// expression anchored to the whole line ([Rule.Pattern]). Exact lines are
// compared as plain strings, so text such as "https://web-check.xyz/api" or
// "Local (Development)" needs no escaping. Rules apply in table order and each
// sees the output of the previous ones. Matching ignores where a line sits in
// the document: the same text always gets the same comments.
//
// Rule files are YAML, validated against [RuleSchema]:
//
//	header:
//	  - OpenAPI 规范文件
//	rules:
//	  - line: "info:"
//	    comments: [API 信息部分]
//	  - pattern: '  - url: http://localhost:\d+/api'
//	    comments: [本地服务器]
//
// [DefaultRules] returns the built-in table for the Web Check OpenAPI spec.
//
// # Files
//
// [Annotator.AnnotateFile] reads, annotates, and writes in one call. The
// input must be UTF-8. Output replaces the destination atomically, so
// annotating a file in place never leaves it truncated. Two runs on the same
// path at once are not coordinated; the last one to finish wins.
//
// # Errors
//
//   - [ErrReadInput]: the input could not be read or is not UTF-8
//     ([ErrInvalidUTF8]).
//   - [ErrWriteOutput]: the output could not be written.
//   - [ErrReadRules]: a rule file could not be read.
//   - [ErrInvalidRules]: a rule file failed to parse, validate, or compile.
//   - [ErrInvalidOption]: a [Config] value is invalid.
//
// A rule that matches nothing is not an error.
package annotate

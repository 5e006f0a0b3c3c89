/* Package main: twostack -- a language of two stacks

A twostack program is a flat sequence of tokens run left to right. Almost every
token either pushes a value onto the primary stack or pops its operands from
there and pushes a result. A second stack exists only as a parking area: values
get there with , and come back with ; so a program can keep something out of
the way while it works on what is under it.

Section 1: Values

There are four kinds of value:

	Int    64-bit signed integer; arithmetic wraps on overflow
	Float  64-bit IEEE float
	Text   an immutable string
	Code   a program fragment; tokens plus its own labels

Literals look like 42, 2.5, "hello", and { 1 + }. A Text literal runs until the
next unescaped double quote; the backslash only stops the quote from closing
the literal, it is kept in the value. A Code literal runs until the next } in
the source, without regard to nesting, and is scanned as a program of its own.

Zero and 0.0 are false; every other value, including empty Text and Code, is
true.

Section 2: Operators

Every operator is a single character. Binary operators pop the right operand
first, then the left, so "7 2 -" is 5.

	,  park       primary to secondary
	;  unpark     secondary to primary
	@  drop       discard the top of the secondary stack
	#  swap       exchange the two stacks wholesale
	.  dup        copy the top of the primary stack
	$  print      pop and print with a newline
	!  truth      1 if truthy else 0
	~  transform  Int complement, Float truncation, Text to Code
	+ - * / %     arithmetic; + also joins Text and concatenates Code
	& |           bitwise, Int only
	= < >         comparison, pushing 1 or 0
	^  jump       transfer control
	?  branch     transfer control if a popped condition is truthy
	:  define     bind a Code body to a Text name

Arithmetic on an Int and a Float gives a Float. Adding Text to a number renders
the number as text and joins the two. Adding two Code values builds a new Code
with the tokens of the left followed by those of the right.

Section 3: Control

A jump target may be a number, a label, or Code.

A number is an offset from the jump token itself, wrapping around the ends of
the running code, so "1 3 ^ 2 3 4" leaves 1 4 and a negative offset loops
backwards.

A label is declared by writing [name] after a token; it names that token. The
Text "name" as a jump target resumes at the named token, so the loop

	3 . [top] $ 1 - . "top" ?

prints 3, 2, and 1. Labels belong to the Code they were scanned in: a Code
value cannot see the labels of the program that pushed it.

A Code target is run to completion, after which the jumping program carries on
with the token after the jump.

Section 4: Functions

The define operator pops a name and then a body:

	{ 2 * } "double" :
	21 double $

Any identifier calls the function of that name. Functions may call themselves
or each other to any depth; calls are kept on the heap, not the native stack,
so deep recursion is limited only by memory, or by the -max-depth flag.

Section 5: Eval

The transform operator turns Text into Code by scanning it as source:

	"5 3 + $" ~ ^

prints 8. A Text that does not scan halts the program like any other error.

Section 6: Errors

Lexical errors are all reported before anything runs, and the program is not
run. Runtime errors halt the program at the offending token; output printed
before that point is kept. Both are reported with the source line and a caret
under the offending text.
*/
package main

/*
Package langdef converts textual grammar description to grammar.Source structure.

Grammar is described using a small language. Self-description of this language is
(see also examples/meta.shape):
*/
//  # comments start with # and end with line feed
//  File(decls:Decls);
//  Decls: Decl[];
//  Decl(annotations:Annotations name:ident body:Body SEMI);
//  Annotations: Annotation[];
//  Annotation("%" name:ident (LPAREN args:Args RPAREN)?);
//  Args: Arg[] COMMA;
//  Arg = Str(string) | Word(ident);
//  Body = Shape(LPAREN tokens:Tokens RPAREN)
//       | Alts(EQ alts:Alts)
//       | List(COLON item:Item "[]" separator:ident?);
//  Item = Ref(ident) | Group(LPAREN alts:Alts RPAREN);
//  Alts: Alt[] PIPE;
//  Alt(name:ident (LPAREN tokens:Tokens RPAREN)?);
//  Tokens: Token[];
//  Token((field:ident COLON)? negated:EXCLAIM? atom:Atom optional:QUESTION?);
//  Atom = Key(ident) | Lit(string) | Call("@" ident) | Nested(LPAREN tokens:Tokens RPAREN);
/*
Description must be a valid UTF-8 text. Line breaks are insignificant.

Names consist of latin letters, digits, and underscores, and start with a letter or underscore.
Names are case-sensitive.

String literals are delimited with double quotes (Go escape sequences allowed)
or single quotes (only \' and \\ escapes allowed). Empty literals are forbidden.

Declaration has one of four forms:
   Name(tokens...);                     single shape
   Name = Alt | Alt(tokens...) | ...;   shape with alternatives
   Name: Item[] SEP;                    list of items, separator is optional
   Name: (Alt | Alt(tokens...))[] SEP;  list of alternatives, separator is optional

A bare alternative name refers to another declaration, an alternative with tokens
produces a shape with this name. Alternatives producing shapes of the same name are merged,
their fields missing in some alternatives become optional.

The first declaration is the start symbol. The same name may be declared more than once,
productions of all declarations are merged.

Each token is a key (a declared name or a built-in token like COMMA, ident, string, int),
a quoted literal, an external function call (@func), or a group of tokens in parentheses.
Token may be bound to a field (field:token), negated (!token, captures text up to the point
where the token matches), and optional (token?).

Annotations precede declarations:
   %doc("Comment for generated type.")
   Digit(int);
*/
package langdef

/*
Package fifth is a small concatenative machine: a dynamically typed,
Forth-flavored virtual machine that compiles words into an append-only
code space and executes them with an indirect-threaded loop over an
explicit return stack.

The machine keeps four pieces of shared state: the data stack of values,
the return stack of saved instruction pointers, the code space of compiled
cells, and the dictionary of words. Tokens arrive one at a time, each
either a literal value or a word name. While interpreting, literals push
and words run; while compiling (between ":" and ";") literals and ordinary
words append cells to the open definition instead. Immediate words are the
one exception: they run even while compiling, which is how ";" itself, and
anything else that needs to act on a definition in progress, gets control.

Host code extends the dictionary through Register, which derives a word's
stack arity from the callable's own signature: a func(a, b Value) Value
pops two and pushes one. Families of data-carrying words are built with
create and does: a factory word calls create to mint a new entry owning a
private data cell, and the rest of the factory body after does becomes the
behavior all of that factory's words share. The kernel's own constant is
defined exactly that way.

A VM is strictly single-threaded; run one per goroutine if you want
parallelism. Execution state lives entirely in process and dies with it.
*/
package fifth

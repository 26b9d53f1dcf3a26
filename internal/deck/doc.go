// Package deck builds the content of the Shor's algorithm presentation as
// plain data: titles, text lines, sampled complexity curves, the grid of
// candidate bases and the worked factoring example. It does not render.
package deck

// Package render turns wave-function frames into pictures.
//
//   - [ASCII]: terminal line plot of |psi|² (asciigraph)
//   - [Snapshot]: |psi(x,0)|², V(x) and |psi(x,t)|² in one figure (gonum/plot)
//   - [Movie]: |psi|², Re psi and Im psi per frame as an animated GIF or a
//     numbered PNG sequence
//
// Nothing here feeds back into the numerics; renderers only read frames.
package render

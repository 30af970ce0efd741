/*
Package mjcf is the boundary between MJCF text files and the element trees the
merge engine works on.

It loads a model file into a tree (rejecting files without a <mujoco> root),
creates the empty composite scene the engine accumulates into, and writes a
finished scene back to disk with indentation. Parsing and serialization are
delegated to github.com/beevik/etree; everything past this package operates on
*etree.Element values only.
*/
package mjcf

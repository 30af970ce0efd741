/*
Package mjmerge combines several MuJoCo MJCF models, one per robot, into a single
scene file for simulators that only accept one root document.

# Concept

Every model is folded, in the order given, into an accumulating <mujoco> scene.
Each top-level section has its own rule:

  - compiler, option, option/flag, visual and non-class defaults are merged by
    attribute union. When two models disagree, the first value is kept and the
    conflict is reported (never an error).
  - size budgets (njmax, nconmax, nstack, nuser_*, ...) are summed.
  - assets, default classes, contacts, actuators, sensors and bodies are copied
    with every identifier prefixed by the robot name ("<robot>_<name>"), so models
    written independently cannot collide.
  - relative asset files are rewritten to absolute paths, resolved against the
    model's own meshdir/texturedir, so the scene does not depend on where each
    model came from.

equality, tendon and keyframe sections are not carried over.

# Usage

	eng := mjmerge.New(
		mjmerge.WithLogger(logger),
		mjmerge.WithOutputPath("/tmp/scene.xml"),
	)
	path, err := eng.Merge(ctx, []mjmerge.Robot{
		{Name: "jvrc1", File: "robots/jvrc1.xml"},
		{Name: "box", File: "objects/box.xml"},
	})

With a single robot, Merge returns its file unchanged and writes nothing.

Conflicts go to the engine logger and to any diagnostics.Sink added with
WithSink; see package diagnostics.
*/
package mjmerge

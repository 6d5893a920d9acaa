package main

import "github.com/automala/automala/cmd"

// TODO: diagonal preconditioning (non-identity mass matrix) for badly scaled targets

// TODO: chain checkpointing so long runs can freeze and continue - state,
//       config, and generator position all need to round-trip

func main() {
	cmd.Execute()
}

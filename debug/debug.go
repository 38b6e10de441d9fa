// Package debug holds the environment-driven debug switches for the
// module. Each switch is read once at init from KEYTREE_DEBUG_*.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Tree     bool
	Traverse bool
	Merge    bool
	Stream   bool
	Canon    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tree = boolEnv("KEYTREE_DEBUG_TREE")
	d.Traverse = boolEnv("KEYTREE_DEBUG_TRAVERSE")
	d.Merge = boolEnv("KEYTREE_DEBUG_MERGE")
	d.Stream = boolEnv("KEYTREE_DEBUG_STREAM")
	d.Canon = boolEnv("KEYTREE_DEBUG_CANON")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tree() bool {
	return d.Tree
}
func Traverse() bool {
	return d.Traverse
}
func Merge() bool {
	return d.Merge
}
func Stream() bool {
	return d.Stream
}
func Canon() bool {
	return d.Canon
}

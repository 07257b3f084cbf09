package main

import "flag"

func main() {
	flag.Parse()
	newShell().run(flag.Args()...)
}

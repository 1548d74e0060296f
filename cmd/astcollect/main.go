package main

import "github.com/dbsmedya/astcollect/cmd/astcollect/cmd"

func main() {
	cmd.Execute()
}

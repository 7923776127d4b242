package main

import "github.com/munichmade/resolvctl/cmd/resolvctl/cmd"

func main() {
	cmd.Execute()
}

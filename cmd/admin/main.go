package main

import "github.com/spec-kit/resistance-admin/cmd/admin/cmd"

func main() {
	cmd.Execute()
}

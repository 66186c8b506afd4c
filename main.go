package main

import (
	"github.com/questboard/server/cmd/server"
)

func main() {
	server.NewServer().Run()
}

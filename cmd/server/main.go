package main

import "hrlite/internal/app/server"

func main() {
	server.Run()
}

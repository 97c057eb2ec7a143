/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/fa-emon/glamhub-server/cmd"

func main() {
	cmd.Execute()
}

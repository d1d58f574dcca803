package main

import "github.com/tempusbreve/dns-sync-helper/cmd"

func main() {
	cmd.Execute()
}

/*
Copyright © 2025 David Stockton <dave@davidstockton.com>
*/
package main

import "github.com/dstockto/spoolscale/cmd"

func main() {
	cmd.Execute()
}

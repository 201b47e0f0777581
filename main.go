// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/mvnenv/mvnenv/cmd/mvnenv"

func main() {
	cmd.Execute()
}

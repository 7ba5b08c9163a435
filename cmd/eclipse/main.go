// Command eclipse explores five centuries of solar eclipse paths in the
// terminal.
package main

func main() {
	Execute()
}

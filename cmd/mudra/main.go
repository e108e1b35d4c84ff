// Command mudra drives desktop actions from hand gestures seen by the
// webcam.
package main

func main() {
	Execute()
}

// VideoVault hides files inside videos and extracts them again.
//
// The embedding itself is done by an external engine process; this program
// builds its command lines, streams its progress, and drives the workflow
// from either a desktop window or the terminal.
//
// Build modes:
//   - Default build: GUI + CLI (requires graphics libraries)
//   - CLI-only build: go build -tags cli (no graphics dependencies)

package main

// version is the application version displayed in the window title.
const version = "v1.0.0"

func main() {
	run()
}

package viewmodel

// ANSI escape sequences used by the terminal renderer.
const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiFrame = "\x1b[1;40;37m"

	bgRevealed = "\x1b[47m"
	bgHidden   = "\x1b[100m"

	fgMine   = "\x1b[31m"
	fgFlag   = "\x1b[91m"
	fgHidden = "\x1b[37m"
)

// countColors maps an adjacent mine count (1-8) to its foreground colour.
var countColors = [9]string{
	"",
	"\x1b[94m",
	"\x1b[32m",
	"\x1b[91m",
	"\x1b[34m",
	"\x1b[31m",
	"\x1b[36m",
	"\x1b[30m",
	"\x1b[90m",
}

package tui

var helpLines = []string{
	"(General)",
	"ctrl+t                 - Toggle terminal window",
	"ctrl+f                 - Toggle string search window",
	"ctrl+h                 - Toggle this help window",
	"ctrl+r                 - Rescan working directory",
	"ctrl+n                 - Next colorscheme",
	"ctrl+p                 - Toggle preview pane",
	"esc                    - Exit",
	"",
	"(File / Recent lists)",
	"up/down, ctrl+j/ctrl+k - Move selection",
	"enter                  - Open selection in the editor",
	"tab                    - Switch window focus",
	"ctrl+x                 - Remove highlighted recent entry",
	"type / backspace       - Edit the filter query",
	"",
	"(String search)",
	"enter                  - Run the search; enter on a result opens it",
	"ctrl+r                 - Toggle replace mode; enter rewrites the hits",
	"",
	"(Terminal)",
	"enter                  - Send the typed command to the shell",
	"\"exit\", \"quit\"         - Hide the terminal and restart the shell",
	"\"restart\", \"clear\"     - Restart the shell session",
}

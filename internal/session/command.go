package session

import "strings"

// Command is a board menu choice.
type Command int

const (
	CmdUnknown Command = iota
	CmdExit
	CmdAll
	CmdToday
	CmdFilter
	CmdDetails
	CmdUpdate
	CmdCreate
)

func (c Command) String() string {
	switch c {
	case CmdExit:
		return "exit"
	case CmdAll:
		return "all"
	case CmdToday:
		return "today"
	case CmdFilter:
		return "filter"
	case CmdDetails:
		return "details"
	case CmdUpdate:
		return "update"
	case CmdCreate:
		return "create"
	default:
		return "unknown"
	}
}

// MenuItem is one line of the board menu.
type MenuItem struct {
	Key     string
	Label   string
	Command Command
}

var (
	letterMenu = []MenuItem{
		{"x", "Exit", CmdExit},
		{"a", "Get all", CmdAll},
		{"t", "Get Today Tickets", CmdToday},
		{"f", "Enter Filter mode", CmdFilter},
		{"d", "Display Ticket Details", CmdDetails},
		{"u", "Update Ticket Status", CmdUpdate},
		{"c", "Create Ticket", CmdCreate},
	}
	numberMenu = []MenuItem{
		{"0", "Exit", CmdExit},
		{"1", "Get all", CmdAll},
		{"2", "Get Today Tickets", CmdToday},
		{"3", "Enter Filter mode", CmdFilter},
		{"4", "Display Ticket Details", CmdDetails},
		{"5", "Update Ticket Status", CmdUpdate},
		{"6", "Create Ticket", CmdCreate},
	}
)

// Menu returns the menu shown on the board. Both key sets are always
// accepted; numeric only picks which one is displayed.
func Menu(numeric bool) []MenuItem {
	if numeric {
		return numberMenu
	}
	return letterMenu
}

// ParseCommand maps a menu key to its command.
func ParseCommand(input string) Command {
	key := strings.ToLower(strings.TrimSpace(input))
	for _, menu := range [][]MenuItem{letterMenu, numberMenu} {
		for _, item := range menu {
			if item.Key == key {
				return item.Command
			}
		}
	}
	return CmdUnknown
}

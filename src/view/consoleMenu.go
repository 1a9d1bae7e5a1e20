package view

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
)

//Controller is the part of the universe the menu drives
type Controller interface {
	Generate()
	LoadCode(code string) error
	Code() string
	SetBrightness(brightness int) error
	ToggleMute() bool
}

//MenuResult tells the caller how to go on after the menu closed
type MenuResult int

const (
	MenuResume MenuResult = iota
	MenuQuit
)

var menuCommands = []struct {
	name  string
	descr string
}{
	{"q", "quit"},
	{"c", "continue"},
	{"g", "print the grid code"},
	{"e", "enter a grid code"},
	{"r", "new grid"},
	{"b", "brightness"},
	{"m", "mute/unmute messages"},
	{"h", "help"},
	{"rc", "new grid and continue"},
}

//ConsoleMenu is the line based menu opened while the simulation is paused
type ConsoleMenu struct {
	c   Controller
	in  *bufio.Scanner
	out io.Writer
	au  aurora.Aurora
}

func NewConsoleMenu(c Controller, in io.Reader, out io.Writer, colors bool) *ConsoleMenu {
	return &ConsoleMenu{
		c:   c,
		in:  bufio.NewScanner(in),
		out: out,
		au:  aurora.NewAurora(colors),
	}
}

//Accept generates grids until the user accepts one
//returns false when the input is closed
func (m *ConsoleMenu) Accept() bool {
	for {
		answer, ok := m.prompt("Is this acceptable? y/n ")
		if !ok {
			return false
		}
		if answer == "y" {
			return true
		}
		m.c.Generate()
	}
}

//Run blocks until the user continues or quits, a closed input quits
func (m *ConsoleMenu) Run() MenuResult {
	for {
		command, ok := m.prompt("You have opened the menu. Enter your command: ")
		if !ok {
			return MenuQuit
		}
		switch command {
		case "q":
			return MenuQuit
		case "c":
			return MenuResume
		case "g":
			fmt.Fprintf(m.out, "The grid code is: %s\n", m.au.Cyan(m.c.Code()))
		case "e":
			if !m.enterCode() {
				return MenuQuit
			}
		case "r":
			m.c.Generate()
		case "b":
			if !m.enterBrightness() {
				return MenuQuit
			}
		case "m":
			if m.c.ToggleMute() {
				fmt.Fprintln(m.out, "Messages muted.")
			} else {
				fmt.Fprintln(m.out, "Messages unmuted.")
			}
		case "h":
			m.help()
		case "rc":
			m.c.Generate()
			return MenuResume
		}
	}
}

func (m *ConsoleMenu) enterCode() bool {
	for {
		code, ok := m.prompt("Please enter the code (or q to abort): ")
		if !ok {
			return false
		}
		if code == "q" {
			return true
		}
		if err := m.c.LoadCode(code); err != nil {
			fmt.Fprintln(m.out, m.au.Red(err.Error()))
			continue
		}
		return true
	}
}

func (m *ConsoleMenu) enterBrightness() bool {
	for {
		answer, ok := m.prompt("Please enter a brightness between 1 & 255 (q to abort): ")
		if !ok {
			return false
		}
		if answer == "q" {
			return true
		}
		brightness, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(m.out, m.au.Red("This is not a number."))
			continue
		}
		if err := m.c.SetBrightness(brightness); err != nil {
			fmt.Fprintln(m.out, m.au.Red(err.Error()))
			continue
		}
		return true
	}
}

func (m *ConsoleMenu) help() {
	names := make([]string, 0, len(menuCommands))
	for _, c := range menuCommands {
		names = append(names, fmt.Sprintf("%s (%s)", m.au.Green(c.name), c.descr))
	}
	fmt.Fprintf(m.out, "Valid commands are: %s\n", strings.Join(names, ", "))
}

func (m *ConsoleMenu) prompt(text string) (string, bool) {
	fmt.Fprint(m.out, m.au.Magenta(text))
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

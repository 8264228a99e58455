package sim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/shlex"
)

const usage = "commands: cw, ccw, spin <detents>, press, hold, state, quit"

// console drives the virtual dial from stdin, one command per line
func (s *Sim) console() {
	fmt.Printf("%s\r\n", usage)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		args, err := shlex.Split(scanner.Text())
		if err != nil {
			fmt.Printf("%s\r\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch args[0] {

		case "cw":
			s.dial.turn(1)

		case "ccw":
			s.dial.turn(-1)

		case "spin":
			if len(args) < 2 {
				fmt.Printf("spin <detents>\r\n")
				continue
			}
			detents, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Printf("%s\r\n", err)
				continue
			}
			s.dial.turn(detents)

		case "press":
			s.click(200 * time.Millisecond)

		case "hold":
			s.click(time.Second)

		case "state":
			s.printState()

		case "quit":
			os.Exit(0)

		default:
			fmt.Printf("%s\r\n", usage)
		}
	}
}

// click holds the button down for dur, then releases; the release
// classifies the gesture
func (s *Sim) click(dur time.Duration) {
	s.dial.press(true)
	time.Sleep(dur)
	s.dial.press(false)
}

func (s *Sim) printState() {
	s.Lock()
	bytes, err := json.MarshalIndent(s.Tuner, "", "  ")
	s.Unlock()
	if err != nil {
		fmt.Printf("%s\r\n", err)
		return
	}
	fmt.Printf("%s\r\n", bytes)
}

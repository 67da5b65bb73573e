// tally is an interactive terminal counter. Keystrokes come either from
// the terminal or, in capture mode, straight from a raw keyboard device
// node so that window-manager shortcuts and OS key-repeat do not get in
// the way of rapid counting.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/juju/errors"
	"github.com/mattn/go-isatty"
	"github.com/temoto/alive/v2"

	"github.com/countkeeper/tally/internal/input"
	"github.com/countkeeper/tally/internal/state"
	"github.com/countkeeper/tally/internal/ui"
	"github.com/countkeeper/tally/log2"
)

var log = log2.NewStderr(log2.LInfo)

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagConfig := cmdline.String("config", "tally.hcl", "")
	flagKbd := cmdline.String("kbd", "", "keyboard device name under "+input.DevInputDir+" (empty = first from config or autodetect off)")
	flagListKbd := cmdline.Bool("list-kbd", false, "list keyboard device nodes and exit")
	flagDebug := cmdline.Bool("debug", false, "")
	_ = cmdline.Parse(os.Args[1:])

	if *flagListKbd {
		for _, name := range input.GetKbdInputs() {
			fmt.Println(name)
		}
		return
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		log.Fatal("tally is interactive, stdin must be a terminal")
	}

	config := state.MustReadConfig(log, *flagConfig)
	if *flagDebug || config.Log.Debug {
		log.SetLevel(log2.LDebug)
		log.SetFlags(log2.LInteractiveFlags)
	}
	log.Debugf("config=%+v", config)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(errors.ErrorStack(errors.Annotate(err, "terminal screen")))
	}
	if err = screen.Init(); err != nil {
		log.Fatal(errors.ErrorStack(errors.Annotate(err, "terminal init")))
	}
	screen.EnableMouse()
	defer screen.Fini()

	handler := input.New(log, screen)
	device := config.Input.DevInputEvent.Device
	if *flagKbd != "" {
		device = *flagKbd
	}
	if device != "" && (config.Input.DevInputEvent.Enable || *flagKbd != "") {
		if err = handler.SetKbd(device); err != nil {
			// not fatal: counting works from the terminal alone
			log.Warningf("device capture unavailable: %v", err)
		}
	}
	if err = handler.Start(); err != nil {
		log.Fatal(errors.ErrorStack(err))
	}

	g := alive.NewAlive()
	front := ui.New(log, screen, handler, config.UI.Title, time.Duration(config.UI.TickMs)*time.Millisecond)
	front.Run(g)

	g.Stop()
	handler.Stop()
	log.Debugf("tally exit count=%d elapsed=%s", front.Counter.Count, front.Counter.Elapsed())
}

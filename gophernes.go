// This file is part of GopherNES.
//
// GopherNES is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherNES is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherNES.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gophernes/battery"
	"github.com/jetsetilly/gophernes/cartridgeloader"
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/digest"
	"github.com/jetsetilly/gophernes/disassembly"
	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/govern"
	"github.com/jetsetilly/gophernes/gui/ebitenplay"
	"github.com/jetsetilly/gophernes/gui/sdlplay"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge"
	"github.com/jetsetilly/gophernes/hardware/output"
	"github.com/jetsetilly/gophernes/hardware/preferences"
	"github.com/jetsetilly/gophernes/logger"
	"github.com/jetsetilly/gophernes/modalflag"
	"github.com/jetsetilly/gophernes/performance"
	"github.com/jetsetilly/gophernes/pngwriter"
	"github.com/jetsetilly/gophernes/prefs"
	"github.com/jetsetilly/gophernes/recorder"
	"github.com/jetsetilly/gophernes/regression"
	"github.com/jetsetilly/gophernes/statsview"
	"github.com/jetsetilly/gophernes/userinput/terminal"
	"github.com/jetsetilly/gophernes/version"
	"github.com/jetsetilly/gophernes/wavwriter"
)

// SDL and Ebitengine require that windows are created and serviced from the
// main thread
func init() {
	runtime.LockOSThread()
}

// #mainthread
func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "HEADLESS", "PLAY", "EBITEN", "PERFORMANCE", "REGRESS", "DISASM", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN", "HEADLESS":
		err = run(md, frontendNone)

	case "PLAY":
		err = run(md, frontendSDL)

	case "EBITEN":
		err = run(md, frontendEbiten)

	case "PERFORMANCE":
		err = perform(md)

	case "REGRESS":
		err = regress(md)

	case "DISASM":
		err = disasm(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(20)
	}
}

type frontend int

const (
	frontendNone frontend = iota
	frontendSDL
	frontendEbiten
)

// the options shared by the RUN, PLAY and EBITEN modes
type runOptions struct {
	frames   *int
	region   *string
	wav      *string
	png      *string
	record   *string
	playback *string
	log      *bool
	memviz   *string
	prefs    *string
	stats    *bool
	checksum *bool
	terminal *string
	battery  *bool

	// window front ends only
	scale  *int
	fpscap *bool
}

func run(md *modalflag.Modes, fe frontend) error {
	md.NewMode()

	var opts runOptions

	if fe == frontendNone {
		opts.frames = md.AddInt("frames", 60, "number of frames to run. zero means run until interrupted")
	} else {
		opts.frames = md.AddInt("frames", 0, "number of frames to run. zero means run until the window is closed")
		opts.scale = md.AddInt("scale", 3, "window scaling")
	}
	if fe == frontendSDL {
		opts.fpscap = md.AddBool("fpscap", true, "cap frame rate to the frame rate of the region")
	}

	opts.region = md.AddString("region", "", "console region: NTSC, PAL")
	opts.wav = md.AddString("wav", "", "write audio to wav file")
	opts.png = md.AddString("png", "", "write final frame to png file")
	opts.record = md.AddString("record", "", "record controller input to transcript file")
	opts.playback = md.AddString("playback", "", "play back controller input from transcript file")
	opts.log = md.AddBool("log", false, "echo log to stdout")
	opts.memviz = md.AddString("memviz", "", "write graph of machine state to dot file on exit")
	opts.prefs = md.AddString("prefs", "", "preferences for this run (key::value; key::value)")
	opts.checksum = md.AddBool("checksum", false, "print checksum of final frame")
	opts.terminal = md.AddString("terminal", "", "read controller input from terminal device")
	opts.battery = md.AddBool("battery", true, "load and save battery backed cartridge RAM")
	if statsview.Available() {
		opts.stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	md.AdditionalHelp("The cartridge argument can be omitted if a transcript is being played back.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *opts.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if opts.stats != nil && *opts.stats {
		statsview.Launch(os.Stdout)
	}

	if *opts.record != "" && *opts.playback != "" {
		return fmt.Errorf("cannot record and playback at the same time")
	}

	// the playback transcript is needed before the emulation is created
	// because it names the cartridge
	var plb *recorder.Playback
	if *opts.playback != "" {
		plb, err = recorder.NewPlayback(*opts.playback)
		if err != nil {
			return err
		}
	}

	var cartload cartridgeloader.Loader
	switch len(md.RemainingArgs()) {
	case 0:
		if plb == nil {
			return fmt.Errorf("cartridge required for %s mode", md)
		}
		cartload = cartridgeloader.NewLoader(plb.CartName)
	case 1:
		cartload = cartridgeloader.NewLoader(md.GetArg(0))
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *opts.prefs != "" {
		prefs.PushCommandLineStack(*opts.prefs)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				fmt.Printf("! unused preferences: %s\n", unused)
			}
		}()
	}

	nes, err := newNES(*opts.region, plb, cartload)
	if err != nil {
		return err
	}

	emu := &emulation{nes: nes}

	if err := emu.attach(opts, fe); err != nil {
		_ = emu.end()
		return err
	}

	if plb != nil {
		if err := plb.AttachToNES(nes); err != nil {
			_ = emu.end()
			return err
		}
		emu.playback = plb
	}

	if *opts.record != "" {
		emu.recorder, err = recorder.NewRecorder(*opts.record, nes, emu.input())
		if err != nil {
			_ = emu.end()
			return err
		}
	}

	err = emu.run(*opts.frames)

	if err := emu.end(); err != nil {
		return err
	}
	if err != nil {
		return err
	}

	if *opts.record != "" {
		fmt.Printf("! recording completed (%s)\n", *opts.record)
	}

	if emu.checksum != nil {
		fmt.Printf("checksum: 0x%06x\n", emu.checksum.Checksum())
	}

	if *opts.memviz != "" {
		if err := dumpMemviz(*opts.memviz, nes); err != nil {
			return err
		}
	}

	return nil
}

// create the emulation. the region of a playback transcript takes priority
// over the region argument
func newNES(region string, plb *recorder.Playback, cartload cartridgeloader.Loader) (*hardware.NES, error) {
	p, err := preferences.NewPreferences()
	if err != nil {
		return nil, err
	}

	if plb != nil {
		region = plb.Region
	}
	if region != "" {
		if err := p.Region.Set(strings.ToUpper(region)); err != nil {
			return nil, err
		}
	}

	env := environment.NewEnvironment(environment.MainEmulation, p)

	return hardware.NewNES(env, cartload)
}

func dumpMemviz(filename string, nes *hardware.NES) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("memviz: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("memviz: %v", err)
		}
	}()

	memviz.Map(f, nes)

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	region := md.AddString("region", "", "console region: NTSC, PAL")
	duration := md.AddString("duration", "5s", "run duration (with an additional 2s lead time)")
	profile := md.AddString("profile", "none", "run performance check with profiling: comma separated CPU, MEM, TRACE or ALL")
	log := md.AddBool("log", false, "echo log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("cartridge required for %s mode", md)
	case 1:
		prf, err := performance.ParseProfileString(*profile)
		if err != nil {
			return err
		}

		nes, err := newNES(*region, nil, cartridgeloader.NewLoader(md.GetArg(0)))
		if err != nil {
			return err
		}

		err = performance.Check(os.Stdout, prf, nes, *duration)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	bytecode := md.AddBool("bytecode", false, "include bytecode in disassembly")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("cartridge required for %s mode", md)
	case 1:
		env := environment.NewEnvironment("disasm", nil)
		env.Quiet = true

		cart := cartridge.NewCartridge(env)
		if err := cart.Attach(cartridgeloader.NewLoader(md.GetArg(0))); err != nil {
			return err
		}

		return disassembly.Write(os.Stdout, disassembly.FromCartridge(cart), *bytecode)
	}

	return fmt.Errorf("too many arguments for %s mode", md)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *revision {
		fmt.Println(version.String())
		return nil
	}

	v, _, _ := version.Version()
	fmt.Println(v)
	return nil
}

func regress(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()

		verbose := md.AddBool("verbose", false, "output more detail (eg. error messages)")
		failOnError := md.AddBool("fail", false, "fail on error")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		return regression.RegressRun(os.Stdout, *verbose, *failOnError, regression.ParseKeys(strings.Join(md.RemainingArgs(), ",")))

	case "LIST":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return regression.RegressList(os.Stdout)
		default:
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}

	case "DELETE":
		md.NewMode()

		answerYes := md.AddBool("yes", false, "answer yes to confirmation")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("database key required for %s mode", md)
		case 1:
			var confirmation io.Reader = os.Stdin
			if *answerYes {
				confirmation = strings.NewReader("y")
			}
			return regression.RegressDelete(os.Stdout, confirmation, md.GetArg(0))
		default:
			return fmt.Errorf("only one entry can be deleted at a time")
		}

	case "ADD":
		return regressAdd(md)
	}

	return nil
}

func regressAdd(md *modalflag.Modes) error {
	md.NewMode()

	mode := md.AddString("mode", "", "type of regression test: VIDEO, PLAYBACK. inferred from the file extension if not set")
	notes := md.AddString("notes", "", "additional annotation for the database")
	region := md.AddString("region", "NTSC", "console region for video regressions: NTSC, PAL")
	numframes := md.AddInt("frames", 10, "number of frames to run for video regressions")
	digestMode := md.AddString("digest", "video", "type of digest to create for video regressions: video, audio, both")

	md.AdditionalHelp("The regression test to be added can be the path to a cartridge file or a previously recorded transcript file.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("cartridge or transcript required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("regression tests can only be added one at a time")
	}

	filename := md.GetArg(0)

	m := strings.ToUpper(*mode)
	if m == "" {
		m = "VIDEO"
		if strings.HasSuffix(strings.ToLower(filename), ".transcript") {
			m = "PLAYBACK"
		}
	}

	var reg regression.Regressor

	switch m {
	case "VIDEO":
		dm, err := regression.ParseDigestMode(*digestMode)
		if err != nil {
			return err
		}
		reg = &regression.VideoRegression{
			CartFile:  filename,
			Region:    strings.ToUpper(*region),
			NumFrames: *numframes,
			Mode:      dm,
			Notes:     *notes,
		}
	case "PLAYBACK":
		reg = &regression.PlaybackRegression{
			Script: filename,
			Notes:  *notes,
		}
	default:
		return fmt.Errorf("unknown regression mode (%s)", *mode)
	}

	return regression.RegressAdd(os.Stdout, reg)
}

// interruptible returns a channel that receives a value when the user
// presses ctrl-c
func interruptible() (chan os.Signal, func()) {
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	return intChan, func() {
		signal.Stop(intChan)
	}
}

// the pieces of a running emulation
type emulation struct {
	nes *hardware.NES

	sdl    *sdlplay.SdlPlay
	ebiten *ebitenplay.EbitenPlay
	term   *terminal.Terminal

	playback *recorder.Playback
	recorder *recorder.Recorder
	checksum *digest.Video
}

// attach the outputs and inputs named by the options to the emulation
func (emu *emulation) attach(opts runOptions, fe frontend) error {
	nes := emu.nes

	if *opts.battery {
		if err := nes.SetBatteryStore(battery.NewStore("")); err != nil {
			return err
		}
	}

	switch fe {
	case frontendSDL:
		frameRate := nes.Spec().FrameRate
		if !*opts.fpscap {
			frameRate = 0
		}
		scr, err := sdlplay.NewSdlPlay(*opts.scale, frameRate, nes.AudioSpec())
		if err != nil {
			return err
		}
		nes.AddVideoRenderer(scr)
		nes.AddAudioMixer(scr)
		emu.sdl = scr
	case frontendEbiten:
		emu.ebiten = ebitenplay.NewEbitenPlay(nes, *opts.scale)
	}

	if *opts.wav != "" {
		aw, err := wavwriter.New(*opts.wav, nes.AudioSpec())
		if err != nil {
			return err
		}
		nes.AddAudioMixer(aw)
	}

	if *opts.png != "" {
		nes.AddVideoRenderer(pngwriter.New(*opts.png))
	}

	if *opts.checksum {
		emu.checksum = digest.NewVideo()
		nes.AddVideoRenderer(emu.checksum)
	}

	if *opts.terminal != "" {
		trm, err := terminal.NewTerminal(*opts.terminal)
		if err != nil {
			return err
		}
		emu.term = trm
		nes.SetInputSource(trm)
	}

	return nil
}

// the input source that is being used. nil if there is no input source
// other than the window
func (emu *emulation) input() output.InputSource {
	if emu.term == nil {
		return nil
	}
	return emu.term
}

func (emu *emulation) run(frames int) error {
	intChan, stop := interruptible()
	defer stop()

	check := func() (govern.State, error) {
		select {
		case <-intChan:
			return govern.Ending, nil
		default:
		}

		if emu.playback != nil && emu.playback.EndFrame() {
			return govern.Ending, nil
		}

		if emu.term != nil && emu.term.Quit() {
			return govern.Ending, nil
		}

		if emu.sdl != nil {
			ok, err := emu.sdl.Service(emu.nes.Pads)
			if err != nil {
				return govern.Ending, err
			}
			if !ok {
				return govern.Ending, nil
			}
		}

		return govern.Running, nil
	}

	// the ebiten front end drives the emulation from its own game loop
	if emu.ebiten != nil {
		return emu.ebiten.Run(func() (govern.State, error) {
			if frames > 0 && emu.nes.FrameNum() >= frames {
				return govern.Ending, nil
			}
			return check()
		})
	}

	if frames > 0 {
		return emu.nes.RunForFrameCount(frames, func(_ int) (govern.State, error) {
			return check()
		})
	}

	return emu.nes.Run(check)
}

// end the emulation and close all inputs and outputs. returns the first
// error that occurs
func (emu *emulation) end() error {
	var firstErr error

	if emu.recorder != nil {
		if err := emu.recorder.End(); err != nil {
			firstErr = err
		}
	}

	if emu.term != nil {
		if err := emu.term.End(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if err := emu.nes.End(); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}

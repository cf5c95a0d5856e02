package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/glyphprompt/internal/config"
	"github.com/dshills/glyphprompt/internal/config/watcher"
	"github.com/dshills/glyphprompt/internal/prompt"
	"github.com/dshills/glyphprompt/internal/prompt/device"
	"github.com/dshills/glyphprompt/internal/prompt/notify"
	"github.com/dshills/glyphprompt/internal/prompt/tag"
	"github.com/dshills/glyphprompt/internal/prompt/tracker"
	"github.com/dshills/glyphprompt/internal/termdevice"
)

type watchOptions struct {
	gamepad  string
	sprite   string
	debounce time.Duration
}

func newWatchCmd(c *cli) *cobra.Command {
	var wo watchOptions

	cmd := &cobra.Command{
		Use:   "watch [text...]",
		Short: "Show live prompts that follow the active device",
		Long: `Opens a terminal view with each text argument substituted for the active
device. Typing switches to the keyboard, clicking or moving the mouse switches
to the mouse. Without arguments every known action is shown.

With --gamepad a virtual gamepad is attached:
  F2  press a gamepad button
  F3  disconnect or reconnect the gamepad

The settings file is watched and reloaded on change. Ctrl+C or Ctrl+Q quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(args, wo)
		},
	}
	cmd.Flags().StringVar(&wo.gamepad, "gamepad", "", "Attach a virtual gamepad with this identity")
	cmd.Flags().StringVar(&wo.sprite, "sprite", "controller", "Custom sprite shown for the active device")
	cmd.Flags().DurationVar(&wo.debounce, "debounce", 200*time.Millisecond, "Settings reload debounce")
	return cmd
}

// reloadRequest is posted to the screen when the settings change, so reloads
// run on the event loop with everything else.
type reloadRequest struct {
	path string
}

func (c *cli) runWatch(texts []string, wo watchOptions) error {
	if c.opts.logFile == "" {
		c.logger = zap.NewNop()
	}

	devices := termdevice.New()
	engine, err := c.newEngine(devices)
	if err != nil {
		return err
	}
	defer engine.Terminate()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	v := newWatchView(screen, engine, devices, texts, wo)
	defer v.close()

	if c.opts.configPath != "" {
		w, err := c.watchSettings(v, wo.debounce)
		if err != nil {
			v.status = "settings watch disabled: " + err.Error()
		} else {
			defer func() { _ = w.Close() }()
		}
	}

	v.draw()
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		if quit := v.handle(ev); quit {
			return nil
		}
		v.draw()
	}
}

// watchSettings watches every file the settings were read from and hands the
// watcher to v, which keeps the list current across reloads. Until the
// settings load, only the settings file itself is watched.
func (c *cli) watchSettings(v *watchView, debounce time.Duration) (*watcher.Watcher, error) {
	configs, err := c.provider()
	if err != nil {
		return nil, err
	}

	w, err := watcher.New(
		watcher.WithDebounce(debounce),
		watcher.WithLogger(c.logger.Named("watcher")))
	if err != nil {
		return nil, err
	}
	v.watch = w
	v.configs = configs
	if err := v.syncWatch(); err != nil {
		if err := w.Watch(c.opts.configPath); err != nil {
			_ = w.Close()
			v.watch = nil
			return nil, err
		}
	}

	screen := v.screen
	w.OnChange(func(change watcher.Change) {
		_ = screen.PostEvent(tcell.NewEventInterrupt(reloadRequest{path: strings.Join(change.Files, ", ")}))
	})
	w.Start()
	return w, nil
}

// watchView renders the live prompts.
type watchView struct {
	screen  tcell.Screen
	engine  *prompt.Engine
	devices *termdevice.Provider

	texts     []*prompt.TextBinding
	icon      *prompt.SpriteBinding
	sub       *notify.Subscription
	lastCause string
	status    string

	padName      string
	pad          device.Info
	padConnected bool

	// Set when the settings are watched.
	watch   *watcher.Watcher
	configs config.Provider
}

func newWatchView(screen tcell.Screen, engine *prompt.Engine, devices *termdevice.Provider, texts []string, wo watchOptions) *watchView {
	v := &watchView{
		screen:  screen,
		engine:  engine,
		devices: devices,
		padName: wo.gamepad,
	}
	if v.padName != "" {
		v.pad = devices.Attach(v.padName, device.NewCategorySet(device.GamePad))
		v.padConnected = true
	}

	if len(texts) == 0 {
		texts = defaultTexts(engine)
	}
	for _, text := range texts {
		v.texts = append(v.texts, engine.BindText(text, nil))
	}
	v.icon = engine.BindSprite(wo.sprite, nil)
	v.sub = engine.Subscribe(func(change notify.Change) {
		v.lastCause = change.Cause.String()
	})
	return v
}

// defaultTexts returns one tagged prompt per known action.
func defaultTexts(engine *prompt.Engine) []string {
	delims := tag.DefaultDelimiters()
	if s, ok := engine.Settings(); ok {
		delims = s.Delimiters()
	}
	keys := engine.ActionKeys()
	texts := make([]string, 0, len(keys))
	for _, k := range keys {
		texts = append(texts, fmt.Sprintf("%-32s %s", k, delims.Wrap(k)))
	}
	return texts
}

func (v *watchView) close() {
	for _, b := range v.texts {
		b.Close()
	}
	v.icon.Close()
	v.sub.Unsubscribe()
}

// handle processes one event and reports whether to quit.
func (v *watchView) handle(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		return false

	case *tcell.EventInterrupt:
		if req, ok := e.Data().(reloadRequest); ok {
			v.reload(req.path)
		}
		return false

	case *tcell.EventKey:
		switch e.Key() {
		case tcell.KeyCtrlC, tcell.KeyCtrlQ:
			return true
		case tcell.KeyF2:
			v.pressGamepad()
			return false
		case tcell.KeyF3:
			v.toggleGamepad()
			return false
		}
	}

	if a, ok := v.devices.Activity(ev); ok {
		v.engine.HandleActivity(a)
		if name := termdevice.ControlName(ev); name != "" {
			v.status = "input: " + name
		}
	}
	return false
}

func (v *watchView) reload(path string) {
	if err := v.engine.Reinitialize(); err != nil {
		v.status = fmt.Sprintf("reload of %s failed: %v", path, err)
		return
	}
	if err := v.syncWatch(); err != nil {
		v.status = fmt.Sprintf("reloaded %s, watch list unchanged: %v", path, err)
		return
	}
	v.status = "reloaded " + path
}

// syncWatch watches the files of the current bundle and drops the ones it no
// longer lists.
func (v *watchView) syncWatch() error {
	if v.watch == nil || v.configs == nil {
		return nil
	}
	b, err := v.configs.Load()
	if err != nil {
		return err
	}

	keep := make(map[string]bool, len(b.Files))
	for _, f := range b.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		keep[abs] = true
		if err := v.watch.Watch(abs); err != nil {
			return err
		}
	}
	for _, f := range v.watch.WatchedFiles() {
		if keep[f] {
			continue
		}
		if err := v.watch.Unwatch(f); err != nil {
			return err
		}
	}
	return nil
}

func (v *watchView) pressGamepad() {
	if v.padName == "" {
		v.status = "no virtual gamepad (use --gamepad)"
		return
	}
	if !v.padConnected {
		v.status = "gamepad disconnected (F3 to reconnect)"
		return
	}
	v.engine.HandleActivity(tracker.Activity{Device: v.pad.ID, Kind: tracker.KindButton})
	v.status = "input: buttonSouth"
}

func (v *watchView) toggleGamepad() {
	if v.padName == "" {
		v.status = "no virtual gamepad (use --gamepad)"
		return
	}
	if v.padConnected {
		v.devices.Detach(v.pad.ID)
		v.engine.HandleDeviceChange(v.pad.ID, tracker.DeviceRemoved)
		v.padConnected = false
		v.status = "gamepad disconnected"
		return
	}
	v.pad = v.devices.Attach(v.padName, device.NewCategorySet(device.GamePad))
	v.engine.HandleDeviceChange(v.pad.ID, tracker.DeviceAdded)
	v.padConnected = true
	v.status = "gamepad connected"
}

func (v *watchView) draw() {
	v.screen.Clear()

	bold := tcell.StyleDefault.Bold(true)
	dim := tcell.StyleDefault.Dim(true)

	active := "none"
	if info, ok := v.engine.ActiveDevice(); ok {
		active = info.Name
	}
	profile := "none"
	if p, err := v.engine.Profile(); err == nil {
		profile = p.DisplayName()
	}
	header := fmt.Sprintf("device: %s  profile: %s", active, profile)
	if s, ok := v.icon.Sprite(); ok {
		header += "  " + s.Token("")
	}
	drawText(v.screen, 0, 0, bold, header)

	for i, b := range v.texts {
		drawText(v.screen, 2, i+2, tcell.StyleDefault, b.Text())
	}

	_, height := v.screen.Size()
	footer := v.status
	if v.lastCause != "" {
		footer = fmt.Sprintf("[%s] %s", v.lastCause, footer)
	}
	drawText(v.screen, 0, height-1, dim, footer)
	v.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	width, height := screen.Size()
	if y < 0 || y >= height {
		return
	}
	for _, r := range s {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

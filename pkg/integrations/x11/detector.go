package x11

import (
	"encoding/binary"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/process"

	"focustrack/pkg/window"
)

// atom names interned once at connection time.
var atomNames = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_WM_NAME",
	"_NET_WM_PID",
	"_NET_WM_DESKTOP",
	"_NET_WM_STATE",
	"_NET_WM_STATE_HIDDEN",
	"_NET_WM_STATE_MAXIMIZED_VERT",
	"_NET_WM_STATE_MAXIMIZED_HORZ",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_STATE_DEMANDS_ATTENTION",
	"_NET_WM_STATE_SKIP_TASKBAR",
	"WM_NAME",
	"WM_CLASS",
	"UTF8_STRING",
}

// Detector implements window.Detector over a live X connection. The
// connection is acquired at construction and held for the detector's
// lifetime.
type Detector struct {
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

// NewDetector connects to the X server. When no server is reachable the
// detector is still returned but reports unavailable.
func NewDetector() *Detector {
	d := &Detector{atoms: make(map[string]xproto.Atom)}

	conn, err := xgb.NewConn()
	if err != nil {
		log.Debug().Err(err).Msg("x11: cannot connect to display")
		return d
	}

	root := xproto.Setup(conn).DefaultScreen(conn).Root

	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			log.Debug().Err(err).Str("atom", name).Msg("x11: atom intern failed")
			conn.Close()
			return d
		}
		d.atoms[name] = reply.Atom
	}

	d.conn = conn
	d.root = root
	return d
}

// IsAvailable reports whether a live X connection is held.
func (d *Detector) IsAvailable() bool {
	return d.conn != nil
}

// Backend returns "x11".
func (d *Detector) Backend() string {
	return "x11"
}

// GetActiveWindow resolves the focused window through an ordered fallback
// chain: input focus walked up to its top-level window, then the window
// manager's _NET_ACTIVE_WINDOW property. Identity falls back to the title
// when neither yields a class.
func (d *Detector) GetActiveWindow() *window.Info {
	if d.conn == nil {
		return nil
	}

	if win := d.focusedFromTree(); win != 0 {
		info := d.windowInfo(win)
		if info.Class != "" || info.Title != "" {
			return &info
		}
	}

	if win := d.activeFromProperty(); win != 0 {
		info := d.windowInfo(win)
		if info.Class != "" || info.Title != "" {
			return &info
		}
	}

	return nil
}

// GetAllWindows enumerates _NET_CLIENT_LIST. Best effort.
func (d *Detector) GetAllWindows() []window.Info {
	if d.conn == nil {
		return nil
	}

	data, err := d.getProperty(d.root, d.atoms["_NET_CLIENT_LIST"], xproto.AtomWindow, 1024)
	if err != nil || len(data) < 4 {
		return nil
	}

	infos := make([]window.Info, 0, len(data)/4)
	for i := 0; i+4 <= len(data); i += 4 {
		win := xproto.Window(binary.LittleEndian.Uint32(data[i:]))
		if win == 0 {
			continue
		}
		info := d.windowInfo(win)
		if info.Class == "" && info.Title == "" {
			continue
		}
		infos = append(infos, info)
	}
	return infos
}

// Close drops the X connection.
func (d *Detector) Close() error {
	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
	return nil
}

// focusedFromTree asks the server for the input focus and walks the window
// tree up to the top-level window carrying a name.
func (d *Detector) focusedFromTree() xproto.Window {
	reply, err := xproto.GetInputFocus(d.conn).Reply()
	if err != nil || reply.Focus == 0 || reply.Focus == d.root {
		return 0
	}

	top := d.topLevelParent(reply.Focus)
	if top == 0 || !d.hasName(top) {
		return 0
	}
	return top
}

// activeFromProperty reads the WM's active-window root property.
func (d *Detector) activeFromProperty() xproto.Window {
	data, err := d.getProperty(d.root, d.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow, 1)
	if err != nil || len(data) < 4 {
		return 0
	}
	return xproto.Window(binary.LittleEndian.Uint32(data))
}

func (d *Detector) topLevelParent(win xproto.Window) xproto.Window {
	for {
		reply, err := xproto.QueryTree(d.conn, win).Reply()
		if err != nil || reply.Parent == d.root || reply.Parent == 0 {
			return win
		}
		win = reply.Parent
	}
}

func (d *Detector) hasName(win xproto.Window) bool {
	if data, _ := d.getProperty(win, d.atoms["_NET_WM_NAME"], d.atoms["UTF8_STRING"], 1); len(data) > 0 {
		return true
	}
	data, _ := d.getProperty(win, d.atoms["WM_NAME"], xproto.AtomString, 1)
	return len(data) > 0
}

// windowInfo reads everything we track about one window.
func (d *Detector) windowInfo(win xproto.Window) window.Info {
	info := window.Info{
		Title:     d.windowTitle(win),
		Workspace: d.workspace(win),
		Sequence:  uint64(win),
		Backend:   "x11",
	}

	_, info.Class = d.windowClass(win)
	info.PID = d.windowPID(win)
	d.applyState(win, &info)

	if info.Class == "" && info.PID > 0 {
		if proc, err := process.NewProcess(int32(info.PID)); err == nil {
			if name, err := proc.Name(); err == nil {
				info.Class = name
			}
		}
	}

	return info
}

func (d *Detector) windowTitle(win xproto.Window) string {
	if data, err := d.getProperty(win, d.atoms["_NET_WM_NAME"], d.atoms["UTF8_STRING"], 256); err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}
	if data, err := d.getProperty(win, d.atoms["WM_NAME"], xproto.AtomString, 256); err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}
	return ""
}

// windowClass reads WM_CLASS, returning the instance and class parts.
func (d *Detector) windowClass(win xproto.Window) (instance, class string) {
	data, err := d.getProperty(win, d.atoms["WM_CLASS"], xproto.AtomString, 256)
	if err != nil || len(data) == 0 {
		return "", ""
	}
	return parseClassProperty(data)
}

func (d *Detector) windowPID(win xproto.Window) int {
	data, err := d.getProperty(win, d.atoms["_NET_WM_PID"], xproto.AtomCardinal, 1)
	if err != nil || len(data) < 4 {
		return 0
	}
	return int(binary.LittleEndian.Uint32(data))
}

func (d *Detector) workspace(win xproto.Window) int {
	data, err := d.getProperty(win, d.atoms["_NET_WM_DESKTOP"], xproto.AtomCardinal, 1)
	if err != nil || len(data) < 4 {
		return -1
	}
	return int(int32(binary.LittleEndian.Uint32(data)))
}

// applyState decodes the _NET_WM_STATE atom list into state flags.
func (d *Detector) applyState(win xproto.Window, info *window.Info) {
	data, err := d.getProperty(win, d.atoms["_NET_WM_STATE"], xproto.AtomAtom, 32)
	if err != nil {
		return
	}

	var maxVert, maxHorz bool
	for i := 0; i+4 <= len(data); i += 4 {
		switch xproto.Atom(binary.LittleEndian.Uint32(data[i:])) {
		case d.atoms["_NET_WM_STATE_HIDDEN"]:
			info.Minimized = true
		case d.atoms["_NET_WM_STATE_MAXIMIZED_VERT"]:
			maxVert = true
		case d.atoms["_NET_WM_STATE_MAXIMIZED_HORZ"]:
			maxHorz = true
		case d.atoms["_NET_WM_STATE_FULLSCREEN"]:
			info.Fullscreen = true
		case d.atoms["_NET_WM_STATE_DEMANDS_ATTENTION"]:
			info.Urgent = true
		case d.atoms["_NET_WM_STATE_SKIP_TASKBAR"]:
			info.SkipTaskbar = true
		}
	}
	info.Maximized = maxVert && maxHorz
}

func (d *Detector) getProperty(win xproto.Window, prop, typ xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(d.conn, false, win, prop, typ, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

// parseClassProperty splits the raw WM_CLASS value, which holds the
// instance and class names as consecutive NUL-terminated strings.
func parseClassProperty(data []byte) (instance, class string) {
	parts := strings.Split(strings.TrimRight(string(data), "\x00"), "\x00")
	if len(parts) >= 1 {
		instance = parts[0]
	}
	if len(parts) >= 2 {
		class = parts[1]
	}
	return instance, class
}

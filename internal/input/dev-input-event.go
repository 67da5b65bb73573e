package input

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/juju/errors"
	inputevent "github.com/temoto/inputevent-go"
	"golang.org/x/sys/unix"

	"github.com/countkeeper/tally/internal/types"
	"github.com/countkeeper/tally/log2"
)

// DevInputDir holds stable symlinks to input device nodes. Absent on
// platforms without Linux evdev, in which case the device source stays
// permanently disabled.
const DevInputDir = "/dev/input/by-id"

const kbdNameMark = "-event-kbd"

// DefaultPollInterval bounds one device wait so that stop and mode toggle
// are observed between reads.
const DefaultPollInterval = 200 * time.Millisecond

// DevInputEventSource reads raw key records from a Linux input device
// node. fd=0 means disabled; Read then yields no events instead of
// failing, so the source is inert rather than fatal without a device.
type DevInputEventSource struct {
	Log *log2.Log

	fd      int32
	mu      sync.Mutex // guards f
	f       *os.File
	timeout int // poll wait in ms, -1 blocks indefinitely
}

// compile-time interface compliance test
var _ Source = new(DevInputEventSource)

func NewDevInputEventSource(log *log2.Log) *DevInputEventSource {
	return &DevInputEventSource{
		Log:     log,
		timeout: int(DefaultPollInterval / time.Millisecond),
	}
}

func (self *DevInputEventSource) String() string { return DevInputEventTag }

func (self *DevInputEventSource) Fd() int32 { return atomic.LoadInt32(&self.fd) }

// SetFd swaps the device descriptor. The previous descriptor, if any, is
// closed. fd=0 disables the source.
func (self *DevInputEventSource) SetFd(fd int32) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.f != nil {
		_ = self.f.Close()
	}
	self.f = nil
	if fd != 0 {
		self.f = os.NewFile(uintptr(fd), DevInputEventTag)
	}
	atomic.StoreInt32(&self.fd, fd)
}

// Open opens a named device under DevInputDir read-only non-blocking and
// swaps it in. Failure leaves the source disabled and is returned as a
// warning-grade error, never fatal.
func (self *DevInputEventSource) Open(device string) error {
	path := filepath.Join(DevInputDir, device)
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return errors.Annotatef(err, "open device=%s", path)
	}
	self.SetFd(int32(fd))
	self.Log.Debugf("%s open device=%s fd=%d", DevInputEventTag, path, fd)
	return nil
}

func (self *DevInputEventSource) Close() error {
	self.SetFd(0)
	return nil
}

// Read waits for the descriptor to become readable, then performs exactly
// one fixed-size record read. A timed-out wait, unset fd, read error or a
// record other than an accepted key release all yield a zero event; the
// producer loop treats that as "no event this iteration".
func (self *DevInputEventSource) Read() (types.InputEvent, error) {
	fd := self.Fd()
	if fd == 0 {
		// nothing to wait on, pace the producer loop instead
		time.Sleep(time.Duration(self.timeout) * time.Millisecond)
		return types.InputEvent{}, nil
	}

	pfds := []unix.PollFd{{Fd: fd, Events: unix.POLLIN}}
	n, err := unix.Poll(pfds, self.timeout)
	if err != nil || n <= 0 {
		return types.InputEvent{}, nil
	}

	self.mu.Lock()
	f := self.f
	self.mu.Unlock()
	if f == nil {
		return types.InputEvent{}, nil
	}

	ie, err := inputevent.ReadOne(f)
	if err != nil {
		self.Log.Warningf("%s read fd=%d err=%v", DevInputEventTag, fd, err)
		return types.InputEvent{}, nil
	}
	// Only key releases count: OS key-repeat fires press/hold records for
	// a held key, releases fire exactly once per keystroke.
	if ie.Type != inputevent.EV_KEY || ie.Value != int32(inputevent.KeyStateUp) {
		return types.InputEvent{}, nil
	}

	key, r := KeyFromScancode(ie.Code)
	ev := types.InputEvent{
		Kind:   types.KindKey,
		Key:    key,
		Rune:   r,
		Time:   time.Now(),
		Source: DevInputEventTag,
	}
	return ev, nil
}

type scanKey struct {
	key types.Key
	r   rune
}

// Deliberately partial: the device source exists only to capture a few
// designated counting keys, anything else decodes to KeyNull and is inert.
var scancodeKeys = map[uint16]scanKey{
	1:  {types.KeyEscape, 0},
	13: {types.KeyRune, '='},
	16: {types.KeyRune, 'q'},
	28: {types.KeyEnter, 0},
	74: {types.KeyRune, '-'},
	78: {types.KeyRune, '+'},
	96: {types.KeyEnter, 0},
}

// KeyFromScancode maps a raw Linux scancode to the logical key set.
func KeyFromScancode(code uint16) (types.Key, rune) {
	if sk, ok := scancodeKeys[code]; ok {
		return sk.key, sk.r
	}
	return types.KeyNull, 0
}

// GetKbdInputs lists candidate keyboard device node names, filtering out
// auxiliary interfaces. Returns an empty list where DevInputDir does not
// exist or cannot be read.
func GetKbdInputs() []string {
	entries, err := os.ReadDir(DevInputDir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !strings.Contains(name, kbdNameMark) {
			continue
		}
		// -if01 etc are extra HID interfaces of the same physical device
		if strings.Contains(name, "-if") {
			continue
		}
		names = append(names, name)
	}
	return names
}

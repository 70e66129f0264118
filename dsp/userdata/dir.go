package userdata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// ErrSlotTooLarge is returned when a slot file exceeds SlotSize.
var ErrSlotTooLarge = errors.New("userdata: slot file too large")

type snapshot [MaxSlots][]byte

// Dir serves slots from files named slot-00.bin ... slot-23.bin in one
// directory. Slot reads see an immutable snapshot and never touch the disk.
type Dir struct {
	path  string
	slots atomic.Pointer[snapshot]
}

// SlotFileName returns the file name backing slot.
func SlotFileName(slot int) string {
	return fmt.Sprintf("slot-%02d.bin", slot)
}

// OpenDir loads every slot file present in path.
func OpenDir(path string) (*Dir, error) {
	d := &Dir{path: path}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// Path returns the watched directory.
func (d *Dir) Path() string {
	return d.path
}

// Slot implements Provider.
func (d *Dir) Slot(slot int) []byte {
	if slot < 0 || slot >= MaxSlots {
		return nil
	}
	s := d.slots.Load()
	if s == nil {
		return nil
	}
	return s[slot]
}

// Reload rereads all slot files and publishes them as a new snapshot. A
// missing file leaves its slot empty.
func (d *Dir) Reload() error {
	var s snapshot
	for i := range s {
		data, err := os.ReadFile(filepath.Join(d.path, SlotFileName(i)))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue
		case err != nil:
			return fmt.Errorf("userdata: read slot %d: %w", i, err)
		case len(data) > SlotSize:
			return fmt.Errorf("%w: slot %d is %d bytes", ErrSlotTooLarge, i, len(data))
		}
		s[i] = data
	}
	d.slots.Store(&s)
	return nil
}

// Watch reloads the directory whenever a slot file changes and then calls
// onChange. It blocks until ctx is done or the watcher fails.
func (d *Dir) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("userdata: watch: %w", err)
	}
	defer w.Close()

	if err := w.Add(d.path); err != nil {
		return fmt.Errorf("userdata: watch %s: %w", d.path, err)
	}

	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&relevant == 0 || !isSlotFile(filepath.Base(ev.Name)) {
				continue
			}
			if err := d.Reload(); err != nil {
				return err
			}
			if onChange != nil {
				onChange()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("userdata: watch %s: %w", d.path, err)
		}
	}
}

func isSlotFile(name string) bool {
	var slot int
	if _, err := fmt.Sscanf(name, "slot-%02d.bin", &slot); err != nil {
		return false
	}
	return slot >= 0 && slot < MaxSlots && name == SlotFileName(slot)
}

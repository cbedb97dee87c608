package provider

import (
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// SysfsPowerSupplyPath is where Linux exposes power supplies.
const SysfsPowerSupplyPath = "/sys/class/power_supply"

// scopeDevice marks a supply that powers a peripheral (mouse, keyboard)
// rather than the host.
const scopeDevice = "Device"

// Metadata holds the descriptive strings of one battery supply.
type Metadata struct {
	Name   string
	Scope  string
	Vendor string
	Model  string
}

// Peripheral reports whether the supply belongs to an attached device
// instead of the host.
func (m Metadata) Peripheral() bool {
	return m.Scope == scopeDevice
}

// SysfsReader reads battery vendor and model strings from sysfs.
type SysfsReader struct {
	fs   afero.Fs
	root string
}

func NewSysfsReader(fs afero.Fs, root string) *SysfsReader {
	return &SysfsReader{fs: fs, root: root}
}

// Read returns the metadata of every supply of type Battery under root,
// sorted by supply name. This is the order distatus/battery enumerates them
// in, peripherals included. Missing files leave the corresponding field
// empty. On systems without sysfs the result is empty.
func (r *SysfsReader) Read() []Metadata {
	infos, err := afero.ReadDir(r.fs, r.root)
	if err != nil {
		logrus.WithError(err).Trace("no sysfs power supplies")
		return nil
	}

	var metas []Metadata
	for _, info := range infos {
		dir := filepath.Join(r.root, info.Name())

		if r.attr(dir, "type") != "Battery" {
			continue
		}

		metas = append(metas, Metadata{
			Name:   info.Name(),
			Scope:  r.attr(dir, "scope"),
			Vendor: r.attr(dir, "manufacturer"),
			Model:  r.attr(dir, "model_name"),
		})
	}

	return metas
}

func (r *SysfsReader) attr(dir, name string) string {
	b, err := afero.ReadFile(r.fs, filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

package linuxatspi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// AT-SPI bus constants.
const (
	registryBus = "org.a11y.atspi.Registry"
	rootPath    = "/org/a11y/atspi/accessible/root"

	ifaceAccessible   = "org.a11y.atspi.Accessible"
	ifaceComponent    = "org.a11y.atspi.Component"
	ifaceAction       = "org.a11y.atspi.Action"
	ifaceValue        = "org.a11y.atspi.Value"
	ifaceText         = "org.a11y.atspi.Text"
	ifaceEditableText = "org.a11y.atspi.EditableText"
	ifaceProperties   = "org.freedesktop.DBus.Properties"
)

// obj addresses one AT-SPI object on the accessibility bus.
type obj struct {
	bus  string
	path string
}

func (o obj) ref() platform.NativeRef {
	return platform.NativeRef{
		Kind:  platform.RefATSPI,
		ATSPI: &platform.ATSPIRef{BusName: o.bus, ObjectPath: o.path},
	}
}

// call invokes one D-Bus method via gdbus and parses the reply.
func (a *Adapter) call(ctx context.Context, timeout time.Duration, target obj, method string, args ...string) (any, error) {
	cmdArgs := []string{
		"call", "--session",
		"--dest", target.bus,
		"--object-path", target.path,
		"--method", method,
	}
	cmdArgs = append(cmdArgs, args...)

	out, err := platform.RunOutput(ctx, timeout, "gdbus", cmdArgs...)
	if err != nil {
		return nil, err
	}
	v, perr := parseGVariant(string(out))
	if perr != nil {
		return nil, cuperr.Wrap(cuperr.PlatformFailure, perr, "parse gdbus reply for %s: %v", method, perr)
	}
	return v, nil
}

// callTuple is call for methods whose reply is a one-element tuple.
func (a *Adapter) callTuple(ctx context.Context, target obj, method string, args ...string) (any, error) {
	v, err := a.call(ctx, platform.DefaultTimeout, target, method, args...)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil, cuperr.New(cuperr.PlatformFailure, "%s returned no value", method)
	}
	return items[0], nil
}

// property reads a D-Bus property through org.freedesktop.DBus.Properties.
func (a *Adapter) property(ctx context.Context, target obj, iface, name string) (any, error) {
	return a.callTuple(ctx, target, ifaceProperties+".Get", iface, name)
}

// stringProperty reads a string property, "" on error.
func (a *Adapter) stringProperty(ctx context.Context, target obj, iface, name string) string {
	v, err := a.property(ctx, target, iface, name)
	if err != nil {
		return ""
	}
	return asString(v)
}

// children fetches the child object list.
func (a *Adapter) children(ctx context.Context, target obj) ([]obj, error) {
	v, err := a.callTuple(ctx, target, ifaceAccessible+".GetChildren")
	if err != nil {
		return nil, err
	}
	items, _ := v.([]any)
	out := make([]obj, 0, len(items))
	for _, item := range items {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			continue
		}
		child := obj{bus: asString(pair[0]), path: asString(pair[1])}
		if child.path == "" || strings.HasSuffix(child.path, "/null") {
			continue
		}
		out = append(out, child)
	}
	return out, nil
}

// roleName fetches and normalizes the role: lowercased, space-to-dash.
func (a *Adapter) roleName(ctx context.Context, target obj) (string, error) {
	v, err := a.callTuple(ctx, target, ifaceAccessible+".GetRoleName")
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(strings.ToLower(asString(v))), "-"), nil
}

// stateMask fetches the packed 64-bit state set (two 32-bit words).
func (a *Adapter) stateMask(ctx context.Context, target obj) uint64 {
	v, err := a.callTuple(ctx, target, ifaceAccessible+".GetState")
	if err != nil {
		return 0
	}
	words, _ := v.([]any)
	var mask uint64
	if len(words) > 0 {
		mask = uint64(uint32(asInt(words[0])))
	}
	if len(words) > 1 {
		mask |= uint64(uint32(asInt(words[1]))) << 32
	}
	return mask
}

// extents fetches screen-coordinate bounds (coord type 0 = screen).
func (a *Adapter) extents(ctx context.Context, target obj) (x, y, w, h int, err error) {
	v, err := a.call(ctx, platform.DefaultTimeout, target, ifaceComponent+".GetExtents", "0")
	if err != nil {
		return 0, 0, 0, 0, err
	}
	tuple, _ := v.([]any)
	if len(tuple) == 1 {
		tuple, _ = tuple[0].([]any)
	}
	if len(tuple) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("unexpected extents shape")
	}
	return asInt(tuple[0]), asInt(tuple[1]), asInt(tuple[2]), asInt(tuple[3]), nil
}

// actionNames lists Action interface action names.
func (a *Adapter) actionNames(ctx context.Context, target obj) []string {
	v, err := a.callTuple(ctx, target, ifaceAction+".GetActions")
	if err != nil {
		return nil
	}
	items, _ := v.([]any)
	var names []string
	for _, item := range items {
		triple, ok := item.([]any)
		if !ok || len(triple) == 0 {
			continue
		}
		if name := asString(triple[0]); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// attributes fetches the object attribute dictionary.
func (a *Adapter) attributes(ctx context.Context, target obj) map[string]string {
	v, err := a.callTuple(ctx, target, ifaceAccessible+".GetAttributes")
	if err != nil {
		return nil
	}
	dict, _ := v.(map[string]any)
	if len(dict) == 0 {
		return nil
	}
	out := make(map[string]string, len(dict))
	for k, raw := range dict {
		out[k] = asString(raw)
	}
	return out
}

// isStale reports whether an error means the object vanished from the
// bus since it was captured.
func isStale(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UnknownObject") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "ServiceUnknown") ||
		strings.Contains(msg, "NameHasNoOwner")
}

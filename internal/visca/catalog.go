package visca

import (
	"fmt"
	"sort"
)

var catalog = buildCatalog(
	command("PanTilt", []byte{0x81, 0x01, 0x06, 0x01, 0x00, 0x00, 0x00, 0x00, 0xff},
		byteParam(OptPanSpeed, 4, PanSpeedRange),
		byteParam(OptTiltSpeed, 5, TiltSpeedRange),
		nibbleParam(OptDirection, DirectionChoices, 12, 13, 14, 15),
	),
	command("PanTiltHome", []byte{0x81, 0x01, 0x06, 0x04, 0xff}),
	command("PanTiltReset", []byte{0x81, 0x01, 0x06, 0x05, 0xff}),

	command("ZoomIn", []byte{0x81, 0x01, 0x04, 0x07, 0x02, 0xff}),
	command("ZoomOut", []byte{0x81, 0x01, 0x04, 0x07, 0x03, 0xff}),
	command("ZoomStop", []byte{0x81, 0x01, 0x04, 0x07, 0x00, 0xff}),
	command("ZoomInVariable", []byte{0x81, 0x01, 0x04, 0x07, 0x20, 0xff},
		nibbleParam(OptZoomSpeed, ZoomSpeedRange, 9),
	),
	command("ZoomOutVariable", []byte{0x81, 0x01, 0x04, 0x07, 0x30, 0xff},
		nibbleParam(OptZoomSpeed, ZoomSpeedRange, 9),
	),
	command("ZoomDirect", []byte{0x81, 0x01, 0x04, 0x47, 0x00, 0x00, 0x00, 0x00, 0xff},
		nibbleParam(OptZoomPosition, ZoomPositionRange, 9, 11, 13, 15),
	),

	command("FocusNearStandard", []byte{0x81, 0x01, 0x04, 0x08, 0x03, 0xff}),
	command("FocusFarStandard", []byte{0x81, 0x01, 0x04, 0x08, 0x02, 0xff}),
	command("FocusStop", []byte{0x81, 0x01, 0x04, 0x08, 0x00, 0xff}),
	command("FocusMode", []byte{0x81, 0x01, 0x04, 0x38, 0x00, 0xff},
		byteParam(OptFocusMode, 4, FocusModeChoices),
	),
	command("FocusOnePush", []byte{0x81, 0x01, 0x04, 0x18, 0x01, 0xff}),
	command("FocusLock", []byte{0x81, 0x0a, 0x04, 0x68, 0x02, 0xff}),
	command("FocusUnlock", []byte{0x81, 0x0a, 0x04, 0x68, 0x03, 0xff}),

	command("ExposureMode", []byte{0x81, 0x01, 0x04, 0x39, 0x00, 0xff},
		byteParam(OptExposureMode, 4, ExposureModeChoices),
	),
	command("IrisUp", []byte{0x81, 0x01, 0x04, 0x0b, 0x02, 0xff}),
	command("IrisDown", []byte{0x81, 0x01, 0x04, 0x0b, 0x03, 0xff}),
	command("IrisSet", []byte{0x81, 0x01, 0x04, 0x4b, 0x00, 0x00, 0x00, 0x00, 0xff},
		nibbleParam(OptIris, IrisChoices, 13, 15),
	),
	command("ShutterUp", []byte{0x81, 0x01, 0x04, 0x0a, 0x02, 0xff}),
	command("ShutterDown", []byte{0x81, 0x01, 0x04, 0x0a, 0x03, 0xff}),
	command("ShutterSet", []byte{0x81, 0x01, 0x04, 0x4a, 0x00, 0x00, 0x00, 0x00, 0xff},
		nibbleParam(OptShutter, ShutterChoices, 13, 15),
	),

	command("PresetSave", []byte{0x81, 0x01, 0x04, 0x3f, 0x01, 0x00, 0xff},
		byteParam(OptPreset, 5, PresetRange),
	),
	command("PresetRecall", []byte{0x81, 0x01, 0x04, 0x3f, 0x02, 0x00, 0xff},
		byteParam(OptPreset, 5, PresetRange),
	),
	command("PresetDriveSpeed", []byte{0x81, 0x01, 0x06, 0x01, 0x00, 0x00, 0xff},
		byteParam(OptPreset, 4, PresetRange),
		byteParam(OptSpeed, 5, PresetSpeedRange),
	),

	command("CameraPower", []byte{0x81, 0x01, 0x04, 0x00, 0x00, 0xff},
		byteParam(OptPower, 4, PowerChoices),
	),

	command("OnScreenDisplayToggle", []byte{0x81, 0x01, 0x04, 0x3f, 0x02, 0x5f, 0xff}),
	command("OnScreenDisplayClose", []byte{0x81, 0x01, 0x06, 0x06, 0x03, 0xff}),
	command("OnScreenDisplayNavigate", []byte{0x81, 0x01, 0x06, 0x01, 0x0e, 0x0e, 0x00, 0x00, 0xff},
		nibbleParam(OptDirection, NavigateChoices, 12, 13, 14, 15),
	),
	command("OnScreenDisplayEnter", []byte{0x81, 0x01, 0x06, 0x06, 0x05, 0xff}),
	command("OnScreenDisplayBack", []byte{0x81, 0x01, 0x06, 0x06, 0x04, 0xff}),

	command("WhiteBalance", []byte{0x81, 0x01, 0x04, 0x35, 0x00, 0xff},
		byteParam(OptWhiteBalance, 4, WhiteBalanceChoices),
	),
	command("WhiteBalanceOnePushTrigger", []byte{0x81, 0x01, 0x04, 0x10, 0x05, 0xff}),
	command("AutoWhiteBalanceSensitivity", []byte{0x81, 0x01, 0x04, 0xa9, 0x00, 0xff},
		byteParam(OptSensitivity, 4, SensitivityChoices),
	),
	command("AutoTracking", []byte{0x81, 0x0a, 0x11, 0x54, 0x00, 0xff},
		byteParam(OptTracking, 4, OnOffChoices),
	),

	inquiry("FocusModeInquiry", []byte{0x81, 0x09, 0x04, 0x38, 0xff},
		[]byte{0x90, 0x50, 0x00, 0xff},
		byteParam(OptFocusMode, 2, FocusModeChoices),
	),
	inquiry("ExposureModeInquiry", []byte{0x81, 0x09, 0x04, 0x39, 0xff},
		[]byte{0x90, 0x50, 0x00, 0xff},
		byteParam(OptExposureMode, 2, ExposureModeChoices),
	),
	inquiry("OnScreenDisplayInquiry", []byte{0x81, 0x09, 0x06, 0x06, 0xff},
		[]byte{0x90, 0x50, 0x00, 0xff},
		byteParam(OptOSD, 2, OSDChoices),
	),
	inquiry("CameraPowerInquiry", []byte{0x81, 0x09, 0x04, 0x00, 0xff},
		[]byte{0x90, 0x50, 0x00, 0xff},
		byteParam(OptPower, 2, PowerChoices),
	),
	inquiry("WhiteBalanceInquiry", []byte{0x81, 0x09, 0x04, 0x35, 0xff},
		[]byte{0x90, 0x50, 0x00, 0xff},
		byteParam(OptWhiteBalance, 2, WhiteBalanceChoices),
	),
	inquiry("ZoomPositionInquiry", []byte{0x81, 0x09, 0x04, 0x47, 0xff},
		[]byte{0x90, 0x50, 0x00, 0x00, 0x00, 0x00, 0xff},
		nibbleParam(OptZoomPosition, ZoomPositionRange, 5, 7, 9, 11),
	),
)

func buildCatalog(templates ...Template) map[string]Template {
	m := make(map[string]Template, len(templates))
	for _, t := range templates {
		if _, dup := m[t.Name]; dup {
			panic(fmt.Sprintf("visca: duplicate template %s", t.Name))
		}
		m[t.Name] = t
	}
	return m
}

// Lookup returns the template registered under name.
func Lookup(name string) (Template, bool) {
	t, ok := catalog[name]
	return t, ok
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Template {
	t, ok := catalog[name]
	if !ok {
		panic("visca: unknown template " + name)
	}
	return t
}

// Names lists every template name, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package visca

// Parameter names shared by commands and the inquiries that report the same
// setting, so an inquiry result can be fed straight back into its command.
const (
	OptDirection    = "direction"
	OptPanSpeed     = "pan_speed"
	OptTiltSpeed    = "tilt_speed"
	OptFocusMode    = "focus_mode"
	OptExposureMode = "exposure_mode"
	OptIris         = "iris"
	OptShutter      = "shutter"
	OptPreset       = "preset"
	OptSpeed        = "speed"
	OptPower        = "power"
	OptOSD          = "osd"
	OptWhiteBalance = "white_balance"
	OptSensitivity  = "sensitivity"
	OptTracking     = "tracking"
	OptZoomSpeed    = "zoom_speed"
	OptZoomPosition = "zoom_position"
)

// Pan/tilt drive directions as the two bytes XX YY of the drive command.
var DirectionChoices = Choices{
	{ID: "up", Label: "Up", Value: 0x0301},
	{ID: "down", Label: "Down", Value: 0x0302},
	{ID: "left", Label: "Left", Value: 0x0103},
	{ID: "right", Label: "Right", Value: 0x0203},
	{ID: "up_left", Label: "Up Left", Value: 0x0101},
	{ID: "up_right", Label: "Up Right", Value: 0x0201},
	{ID: "down_left", Label: "Down Left", Value: 0x0102},
	{ID: "down_right", Label: "Down Right", Value: 0x0202},
	{ID: "stop", Label: "Stop", Value: 0x0303},
}

var NavigateChoices = Choices{
	{ID: "up", Label: "Up", Value: 0x0301},
	{ID: "down", Label: "Down", Value: 0x0302},
	{ID: "left", Label: "Left", Value: 0x0103},
	{ID: "right", Label: "Right", Value: 0x0203},
}

var FocusModeChoices = Choices{
	{ID: "auto", Label: "Auto", Value: 0x02},
	{ID: "manual", Label: "Manual", Value: 0x03},
}

var ExposureModeChoices = Choices{
	{ID: "full_auto", Label: "Full auto", Value: 0x00},
	{ID: "manual", Label: "Manual", Value: 0x03},
	{ID: "shutter_priority", Label: "Shutter priority", Value: 0x0a},
	{ID: "iris_priority", Label: "Iris priority", Value: 0x0b},
	{ID: "bright", Label: "Bright mode (manual)", Value: 0x0d},
}

var IrisChoices = Choices{
	{ID: "F1.8", Label: "F1.8", Value: 0x11},
	{ID: "F2.0", Label: "F2.0", Value: 0x10},
	{ID: "F2.4", Label: "F2.4", Value: 0x0f},
	{ID: "F2.8", Label: "F2.8", Value: 0x0e},
	{ID: "F3.4", Label: "F3.4", Value: 0x0d},
	{ID: "F4.0", Label: "F4.0", Value: 0x0c},
	{ID: "F4.8", Label: "F4.8", Value: 0x0b},
	{ID: "F5.6", Label: "F5.6", Value: 0x0a},
	{ID: "F6.8", Label: "F6.8", Value: 0x09},
	{ID: "F8.0", Label: "F8.0", Value: 0x08},
	{ID: "F9.6", Label: "F9.6", Value: 0x07},
	{ID: "F11.0", Label: "F11.0", Value: 0x06},
	{ID: "closed", Label: "CLOSED", Value: 0x00},
}

var ShutterChoices = Choices{
	{ID: "1/10000", Label: "1/10000", Value: 0x15},
	{ID: "1/6000", Label: "1/6000", Value: 0x14},
	{ID: "1/4000", Label: "1/4000", Value: 0x13},
	{ID: "1/3000", Label: "1/3000", Value: 0x12},
	{ID: "1/2000", Label: "1/2000", Value: 0x11},
	{ID: "1/1500", Label: "1/1500", Value: 0x10},
	{ID: "1/1000", Label: "1/1000", Value: 0x0f},
	{ID: "1/725", Label: "1/725", Value: 0x0e},
	{ID: "1/500", Label: "1/500", Value: 0x0d},
	{ID: "1/350", Label: "1/350", Value: 0x0c},
	{ID: "1/250", Label: "1/250", Value: 0x0b},
	{ID: "1/180", Label: "1/180", Value: 0x0a},
	{ID: "1/125", Label: "1/125", Value: 0x09},
	{ID: "1/100", Label: "1/100", Value: 0x08},
	{ID: "1/90", Label: "1/90", Value: 0x07},
	{ID: "1/60", Label: "1/60", Value: 0x06},
	{ID: "1/30", Label: "1/30", Value: 0x05},
	{ID: "1/15", Label: "1/15", Value: 0x04},
	{ID: "1/8", Label: "1/8", Value: 0x03},
	{ID: "1/4", Label: "1/4", Value: 0x02},
	{ID: "1/2", Label: "1/2", Value: 0x01},
}

var PowerChoices = Choices{
	{ID: "on", Label: "Power On", Value: 0x02},
	{ID: "standby", Label: "Standby", Value: 0x03},
}

var OSDChoices = Choices{
	{ID: "open", Label: "Open", Value: 0x02},
	{ID: "close", Label: "Close", Value: 0x03},
}

var WhiteBalanceChoices = Choices{
	{ID: "auto", Label: "Auto", Value: 0x00},
	{ID: "indoor", Label: "Indoor", Value: 0x01},
	{ID: "outdoor", Label: "Outdoor", Value: 0x02},
	{ID: "one_push", Label: "One Push", Value: 0x03},
	{ID: "auto_tracking", Label: "Auto Tracking", Value: 0x04},
	{ID: "manual", Label: "Manual", Value: 0x05},
}

var SensitivityChoices = Choices{
	{ID: "high", Label: "High", Value: 0x00},
	{ID: "normal", Label: "Normal", Value: 0x01},
	{ID: "low", Label: "Low", Value: 0x02},
}

var OnOffChoices = Choices{
	{ID: "on", Label: "On", Value: 0x02},
	{ID: "off", Label: "Off", Value: 0x03},
}

var (
	PanSpeedRange     = Range{Min: 0x01, Max: 0x18}
	TiltSpeedRange    = Range{Min: 0x01, Max: 0x14}
	PresetRange       = Range{Min: 0x00, Max: 0xfe}
	PresetSpeedRange  = Range{Min: 0x01, Max: 0x18}
	ZoomSpeedRange    = Range{Min: 0x00, Max: 0x07}
	ZoomPositionRange = Range{Min: 0x0000, Max: 0x4000}
)

package visca

import (
	"bytes"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func domainValues(d Domain) []string {
	switch d := d.(type) {
	case Choices:
		return d.IDs()
	case Range:
		var out []string
		for n := d.Min; n <= d.Max; n++ {
			out = append(out, strconv.Itoa(n))
		}
		return out
	}
	return nil
}

func TestEncode_FixedCommand(t *testing.T) {
	b, err := Encode(MustLookup("ZoomStop"), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x81, 0x01, 0x04, 0x07, 0x00, 0xff}, b)
}

func TestEncode_DoesNotMutateSkeleton(t *testing.T) {
	tmpl := MustLookup("FocusMode")
	before := bytes.Clone(tmpl.Bytes)

	_, err := Encode(tmpl, Options{OptFocusMode: "manual"})
	require.NoError(t, err)
	assert.Equal(t, before, MustLookup("FocusMode").Bytes)
}

func TestEncode_PanTilt(t *testing.T) {
	b, err := Encode(MustLookup("PanTilt"), Options{
		OptPanSpeed:  "24",
		OptTiltSpeed: "20",
		OptDirection: "up_left",
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x81, 0x01, 0x06, 0x01, 0x18, 0x14, 0x01, 0x01, 0xff}, b)
}

func TestEncode_NibbleParams(t *testing.T) {
	b, err := Encode(MustLookup("ZoomDirect"), Options{OptZoomPosition: strconv.Itoa(0x1234)})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x81, 0x01, 0x04, 0x47, 0x01, 0x02, 0x03, 0x04, 0xff}, b)

	b, err = Encode(MustLookup("ZoomInVariable"), Options{OptZoomSpeed: "5"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x81, 0x01, 0x04, 0x07, 0x25, 0xff}, b)

	b, err = Encode(MustLookup("IrisSet"), Options{OptIris: "F1.8"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x81, 0x01, 0x04, 0x4b, 0x00, 0x00, 0x01, 0x01, 0xff}, b)
}

func TestEncode_RangeClamps(t *testing.T) {
	tmpl := MustLookup("PanTilt")

	b, err := Encode(tmpl, Options{OptPanSpeed: "99", OptTiltSpeed: "0", OptDirection: "stop"})
	require.NoError(t, err)
	assert.Equal(t, byte(0x18), b[4])
	assert.Equal(t, byte(0x01), b[5])
}

func TestEncode_UnknownChoice(t *testing.T) {
	_, err := Encode(MustLookup("CameraPower"), Options{OptPower: "maybe"})

	var ee *EncodingError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "CameraPower", ee.Template)
	assert.Equal(t, OptPower, ee.Param)
	assert.Equal(t, "maybe", ee.Value)
}

func TestEncode_MissingValue(t *testing.T) {
	_, err := Encode(MustLookup("PresetRecall"), Options{})

	var ee *EncodingError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, OptPreset, ee.Param)
}

func TestEncode_NonNumericRange(t *testing.T) {
	_, err := Encode(MustLookup("PresetRecall"), Options{OptPreset: "one"})

	var ee *EncodingError
	require.ErrorAs(t, err, &ee)
}

func TestDecode_CommandCompletion(t *testing.T) {
	opts, err := Decode(MustLookup("ZoomStop"), []byte{0x90, 0x51, 0xff})
	require.NoError(t, err)
	assert.Nil(t, opts)
}

func TestDecode_CommandCompletionWithData(t *testing.T) {
	_, err := Decode(MustLookup("ZoomStop"), []byte{0x90, 0x51, 0x02, 0xff})

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "ZoomStop", pe.Template)
}

func TestDecode_Inquiry(t *testing.T) {
	opts, err := Decode(MustLookup("FocusModeInquiry"), []byte{0x90, 0x50, 0x03, 0xff})
	require.NoError(t, err)
	assert.Equal(t, Options{OptFocusMode: "manual"}, opts)

	opts, err = Decode(MustLookup("ZoomPositionInquiry"), []byte{0x90, 0x50, 0x04, 0x00, 0x00, 0x00, 0xff})
	require.NoError(t, err)
	assert.Equal(t, Options{OptZoomPosition: strconv.Itoa(0x4000)}, opts)
}

func TestDecode_WrongLength(t *testing.T) {
	_, err := Decode(MustLookup("FocusModeInquiry"), []byte{0x90, 0x50, 0x02, 0x02, 0xff})

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
}

func TestDecode_UnknownChoice(t *testing.T) {
	_, err := Decode(MustLookup("FocusModeInquiry"), []byte{0x90, 0x50, 0x07, 0xff})

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
}

func TestDecode_FixedNibbleMismatch(t *testing.T) {
	_, err := Decode(MustLookup("ZoomPositionInquiry"), []byte{0x90, 0x50, 0x14, 0x00, 0x00, 0x00, 0xff})

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
}

func TestDecode_ErrorReply(t *testing.T) {
	_, err := Decode(MustLookup("FocusModeInquiry"), []byte{0x90, 0x60, 0x03, 0xff})

	assert.True(t, errors.Is(err, ErrBufferFull))
	var de *DeviceError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "FocusModeInquiry", de.Template)
}

func TestReplyRoundTrip_AllInquiries(t *testing.T) {
	for _, name := range Names() {
		tmpl := MustLookup(name)
		if tmpl.Kind != KindInquiry {
			continue
		}
		for _, p := range tmpl.ReplyParams() {
			for _, v := range domainValues(p.Domain) {
				want := Options{p.Name: v}
				reply, err := EncodeReply(tmpl, want)
				require.NoError(t, err, "%s %s=%s", name, p.Name, v)

				got, err := Decode(tmpl, reply)
				require.NoError(t, err, "%s %s=%s", name, p.Name, v)
				assert.Equal(t, want, got)
			}
		}
	}
}

// A setting written by a command reads back identically through the
// inquiry reporting it.
func TestCommandInquiryRoundTrip(t *testing.T) {
	pairs := []struct{ command, inquiry, param string }{
		{"FocusMode", "FocusModeInquiry", OptFocusMode},
		{"ExposureMode", "ExposureModeInquiry", OptExposureMode},
		{"CameraPower", "CameraPowerInquiry", OptPower},
		{"WhiteBalance", "WhiteBalanceInquiry", OptWhiteBalance},
		{"ZoomDirect", "ZoomPositionInquiry", OptZoomPosition},
	}

	for _, pair := range pairs {
		cmd := MustLookup(pair.command)
		inq := MustLookup(pair.inquiry)
		require.Len(t, cmd.Params, 1)
		require.Len(t, inq.ReplyParams(), 1)

		for _, v := range domainValues(cmd.Params[0].Domain) {
			req, err := Encode(cmd, Options{pair.param: v})
			require.NoError(t, err)

			reply := bytes.Clone(inq.Response.Bytes)
			putNibbles(reply, inq.ReplyParams()[0].Nibbles, getNibbles(req, cmd.Params[0].Nibbles))

			got, err := Decode(inq, reply)
			require.NoError(t, err)
			assert.Equal(t, Options{pair.param: v}, got, "%s=%s", pair.command, v)
		}
	}
}

package protocol

import "testing"

func TestEventRoundTrip(t *testing.T) {
	in := &Event{
		Seq:       7,
		HID:       "h12",
		Type:      EventSubmit,
		Fields:    map[string]string{"h13": "Uncontrolled text"},
		Prevented: true,
	}

	data, err := EncodeEvent(in)
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}
	f, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	out, err := DecodeEvent(f)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}

	if out.Seq != 7 || out.HID != "h12" || out.Type != EventSubmit || !out.Prevented {
		t.Errorf("got %+v", out)
	}
	if out.Fields["h13"] != "Uncontrolled text" {
		t.Errorf("fields = %v", out.Fields)
	}
}

func TestDecodeEventFromClientJSON(t *testing.T) {
	payload := []byte(`{"seq":3,"hid":"h4","type":"input","value":"Controlled!"}`)
	data, err := NewFrame(FrameEvent, payload).Encode()
	if err != nil {
		t.Fatal(err)
	}
	f, err := DecodeFrame(data)
	if err != nil {
		t.Fatal(err)
	}
	ev, err := DecodeEvent(f)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if ev.Type != EventInput || ev.Value != "Controlled!" {
		t.Errorf("got %+v", ev)
	}
}

func TestEventTypeValid(t *testing.T) {
	for _, et := range []EventType{EventClick, EventInput, EventChange, EventSubmit} {
		if !et.Valid() {
			t.Errorf("%s should be valid", et)
		}
	}
	if EventType("hover").Valid() {
		t.Error("hover should not be valid")
	}
}

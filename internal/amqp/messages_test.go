package amqp

import "testing"

func TestBillEventMessageRoundTrip(t *testing.T) {
	msg := NewBillEventMessage("bill-1", "user-1", ActionPaid)
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := BillEventMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.BillID != "bill-1" || got.Owner != "user-1" || got.Action != ActionPaid {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatal("timestamp should be set")
	}
}

func TestBillEventMessageFromJSONInvalid(t *testing.T) {
	if _, err := BillEventMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

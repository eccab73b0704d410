package serial

import "testing"

func TestPortCloseUnopened(t *testing.T) {
	p := &Port{}
	if err := p.Close(); err != nil {
		t.Errorf("Close() on unopened port = %v, want nil", err)
	}
}

func TestPortAccessors(t *testing.T) {
	p := &Port{portName: "/dev/ttyUSB0", baudRate: DefaultBaudRate}
	if got := p.PortName(); got != "/dev/ttyUSB0" {
		t.Errorf("PortName() = %q, want %q", got, "/dev/ttyUSB0")
	}
	if got := p.BaudRate(); got != 115200 {
		t.Errorf("BaudRate() = %d, want %d", got, 115200)
	}
}

func TestOpenMissingPort(t *testing.T) {
	if _, err := Open("/dev/mw-img-conv-no-such-port", DefaultBaudRate); err == nil {
		t.Error("Open() on missing port succeeded, want error")
	}
}

package tests

import (
	"testing"
)

var fixture *Fixture //nolint:gochecknoglobals

func TestMain(m *testing.M) {
	fixture = NewFixture()
	defer fixture.Close()

	m.Run()
}

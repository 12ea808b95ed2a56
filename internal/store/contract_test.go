package store_test

import (
	"testing"

	"github.com/Makepad-fr/contactbook/internal/store"
	"github.com/Makepad-fr/contactbook/internal/store/storetest"
)

func TestMemoryContract(t *testing.T) {
	storetest.RunDurable(t, store.NewMemory().Durable())
}

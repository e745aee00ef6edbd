package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
)

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}

func TestBrowser(t *testing.T) {
	t.Log("start store directory browser tests")
	suite.Run(t, &TestSuite1{})
}

package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/qcri/trs2xml/cmd"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		logrus.Fatal(err)
	}
}

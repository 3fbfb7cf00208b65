package main

import (
	"github.com/sirupsen/logrus"

	"oandarates/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("application exited with error")
	}
}

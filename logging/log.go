/*
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package logging is a helper for the "github.com/op/go-logging" package so
// that each consuming package can obtain a preconfigured, named logger in
// one line.
package logging

import (
	"log"
	"os"

	golog "github.com/op/go-logging"

	"github.com/frankkopp/hyperbola/config"
)

var standardFormat = golog.MustStringFormatter(
	`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`)

var loggers = map[string]*golog.Logger{}

// GetLog returns a named Logger backed by os.Stdout, configured at the
// level from config.Settings.Log. Repeated calls for the same name return
// the same underlying logger re-leveled to the current config.
func GetLog(name string) *golog.Logger {
	l, ok := loggers[name]
	if !ok {
		var err error
		l, err = golog.GetLogger(name)
		if err != nil {
			log.Fatalf("logging: could not create logger %q: %v", name, err)
		}
		loggers[name] = l
	}
	backend := golog.NewLogBackend(os.Stdout, "", 0)
	formatted := golog.NewBackendFormatter(backend, standardFormat)
	leveled := golog.AddModuleLevel(formatted)
	leveled.SetLevel(golog.Level(config.Settings.Log.LogLevel), "")
	l.SetBackend(leveled)
	return l
}

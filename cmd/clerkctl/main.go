// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"os"

	"github.com/MKhiriev/go-clerk-fapi/cmd/clerkctl/commands"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := commands.BuildInfo{
		Version: buildVersion,
		Date:    buildDate,
		Commit:  buildCommit,
	}
	if err := commands.Execute(info); err != nil {
		os.Exit(1)
	}
}

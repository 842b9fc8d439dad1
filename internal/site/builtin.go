package site

import "github.com/litescript/ls-astrotool/internal/angle"

// Greenwich is the Royal Observatory, Greenwich.
var Greenwich = New("Greenwich",
	angle.NewDMS(1, 51, 28, 40.1),
	angle.NewDMS(-1, 0, 0, 5.3),
	46)

// Builtin lists the sites every store falls back to.
var Builtin = []Location{
	Greenwich,
	New("Mauna Kea", angle.NewDMS(1, 19, 49, 34.0), angle.NewDMS(-1, 155, 28, 34.0), 4205),
	New("Paranal", angle.NewDMS(-1, 24, 37, 38.0), angle.NewDMS(-1, 70, 24, 15.0), 2635),
	New("La Palma", angle.NewDMS(1, 28, 45, 25.0), angle.NewDMS(-1, 17, 53, 20.0), 2396),
	New("Pic du Midi", angle.NewDMS(1, 42, 56, 11.0), angle.NewDMS(1, 0, 8, 32.0), 2877),
	New("Siding Spring", angle.NewDMS(-1, 31, 16, 24.0), angle.NewDMS(1, 149, 3, 40.0), 1165),
}

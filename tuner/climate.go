package tuner

import (
	"fmt"
	"time"
)

// Climate is the last good ambient reading
type Climate struct {
	TempC    float64
	Humidity float64
	Valid    bool
}

func fahrenheit(c float64) float64 {
	return c*9/5 + 32
}

const climatePeriod = 2 * time.Second

// climateLoop polls the sensor while the climate screen is up.  A
// failed read is logged and the previous reading stays on screen; the
// next cycle self-corrects.
func (t *Tuner) climateLoop() {
	for {
		t.Lock()
		active := t.State.Screen == ScreenClimate
		t.Unlock()

		if active {
			temp, humidity, err := t.sensor.Read()
			if err != nil {
				fmt.Printf("Sensor read error: %s\r\n", err)
			} else {
				t.intend(func() []Command {
					t.Climate = Climate{temp, humidity, true}
					return nil
				})
			}
		}

		time.Sleep(climatePeriod)
	}
}

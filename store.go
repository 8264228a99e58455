//go:build !tinygo

package pitchfork

import (
	"encoding/json"
	"fmt"
	"os"
)

// ThingStore stores thing state as JSON in store/{id}.json
func ThingStore(t Thinger) {
	bytes, err := json.MarshalIndent(t, "", "\t")
	if err != nil {
		fmt.Printf("Store %s marshal error: %s\r\n", t.Id(), err)
		return
	}
	os.MkdirAll("store", 0700)
	if err := os.WriteFile("store/"+t.Id()+".json", bytes, 0600); err != nil {
		fmt.Printf("Store %s write error: %s\r\n", t.Id(), err)
	}
}

// ThingRestore restores thing state from store/{id}.json, if present
func ThingRestore(t Thinger) {
	bytes, err := os.ReadFile("store/" + t.Id() + ".json")
	if err != nil {
		return
	}
	if err := json.Unmarshal(bytes, t); err != nil {
		fmt.Printf("Restore %s unmarshal error: %s\r\n", t.Id(), err)
	}
}

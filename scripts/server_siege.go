package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	concurreny = flag.Int("c", 10, "Concurrency")
	gestures   = flag.Int("n", 100, "Number of resize gestures")
	steps      = flag.Int("s", 20, "Drag events per gesture")
	baseURL    = flag.String("u", "http://localhost:4446", "Server url")
)

func post(url string, body interface{}, out interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: %d %s", url, resp.StatusCode, msg)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	_, err = io.Copy(io.Discard, resp.Body)
	return err
}

// gesture runs one full resize against a fresh session: create, grab the
// south east corner, drag it out in steps and report the final layout.
func gesture(c chan error) {
	var sess struct {
		ID string `json:"id"`
	}
	if err := post(*baseURL+"/sessions", map[string]interface{}{"width": 400, "height": 300}, &sess); err != nil {
		c <- err
		return
	}
	url := *baseURL + "/sessions/" + sess.ID

	if err := post(url+"/resize/start", map[string]string{"x": "e", "y": "s"}, nil); err != nil {
		c <- err
		return
	}
	for i := 1; i <= *steps; i++ {
		d := map[string]interface{}{"dx": i * 3, "dy": i * 2, "shift": i%5 == 0}
		if err := post(url+"/resize/drag", d, nil); err != nil {
			c <- err
			return
		}
	}
	c <- post(url+"/resize/end", map[string]interface{}{"actual_width": 400 + *steps*3, "actual_height": 300 + *steps*2}, nil)
}

func main() {
	flag.Parse()

	fmt.Println(*concurreny, "concurrent editors...")

	start := time.Now()

	success, fail := 0, 0

	result := make(chan error)
	tokenChan := make(chan bool, *concurreny)

	for i := 0; i < *concurreny; i++ {
		tokenChan <- true
	}

	for i := 0; i < *gestures; i++ {
		go func() {
			<-tokenChan
			defer func() { tokenChan <- true }()

			gesture(result)
		}()
	}

	for i := 0; i < *gestures; i++ {
		if err := <-result; err != nil {
			fmt.Println(err)
			fail++
		} else {
			success++
		}
	}

	total := success + fail
	fmt.Println("Total:", total)
	fmt.Println("Success:", success)
	fmt.Println("Fail:", fail)
	fmt.Printf("Finished in %v\n", time.Since(start))
}

// Package main runs a demo WebSocket client for coverage run events.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	base := fmt.Sprintf("http://localhost:%s", port)

	// Connect to the event feed first so we catch the run events
	u := url.URL{Scheme: "ws", Host: fmt.Sprintf("localhost:%s", port), Path: "/v1/coverage/ws"}
	hdr := http.Header{}
	hdr.Set("X-Tenant-Id", "t_demo")
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), hdr)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer func() { _ = conn.Close() }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg wsMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if msg.Type == "ping" {
				_ = conn.WriteJSON(wsMessage{Type: "pong"})
				continue
			}
			fmt.Printf("event %s: %s\n", msg.Type, string(msg.Payload))
		}
	}()

	// Seed a few visibility windows and kick off a plan
	sats := []byte(`{"tenantId":"t_demo","satellites":[
		{"name":"Sat-Alpha","start":0,"end":6,"cost":1200,"region":"Asia"},
		{"name":"Sat-Eta","start":2,"end":8,"cost":900,"region":"Asia"},
		{"name":"Sat-Gamma","start":8,"end":14,"cost":1800,"region":"Asia"}]}`)
	if err := post(base+"/v1/satellites", sats); err != nil {
		log.Fatal("seed:", err)
	}
	plan := []byte(`{"region":"Asia","algorithm":"greedy","window":{"start":0,"end":24}}`)
	if err := post(base+"/v1/coverage/plan", plan); err != nil {
		log.Fatal("plan:", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		fmt.Println("done listening")
	}
}

func post(url string, body []byte) error {
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-Id", "t_demo")
	req.Header.Set("X-Role", "admin")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s: status %d", url, resp.StatusCode)
	}
	return nil
}

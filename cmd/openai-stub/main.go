// Command openai-stub is a tiny OpenAI-compatible server for offline runs of
// the pipeline. It recognizes the classification prompt and answers with a
// fenced JSON object, exercising the same sanitizer path a real model does.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		sys := ""
		if len(req.Messages) > 0 {
			sys = strings.TrimSpace(req.Messages[0].Content)
		}
		var content string
		if strings.Contains(sys, "SOLO JSON válido") {
			// Classification prompt: answer with a fenced object wrapped in
			// prose, the way real models tend to.
			payload := map[string]any{
				"title":     "Análisis de prueba",
				"summary":   "Resumen generado por el stub para pruebas locales.",
				"theme":     "Inteligencia Artificial",
				"geography": "Global",
				"impact":    "Sin impacto real; respuesta sintética para desarrollo.",
				"keywords":  []string{"prueba", "stub"},
			}
			b, _ := json.Marshal(payload)
			content = "Claro, aquí está el análisis:\n```json\n" + string(b) + "\n```"
		} else {
			content = "{}"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "stub-1",
			"object": "chat.completion",
			"model":  req.Model,
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": content},
				},
			},
		})
	})

	log.Printf("openai-stub listening on %s (model %s)", addr, model)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

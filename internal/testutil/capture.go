package testutil

// SampleCaptureJSON returns a minimal capture document with one task
// containing a tap step (with target box) and a success step. imageID is
// referenced by both steps.
func SampleCaptureJSON(imageID string) []byte {
	return []byte(`{
  "app": "Demo App",
  "bundle": "com.example.demo",
  "app-version": "1.2.3",
  "tasks": [
    {
      "id": "task-1",
      "phrases": "Place an order",
      "prereq-info": {"username": "demo", "password": "secret"},
      "steps": [
        {
          "id": "step-1",
          "action": {
            "phrases": ["Tap the order button"],
            "action": {"type": "tap", "x": 0.5, "y": 0.25},
            "target": {"x": 10, "y": 20, "width": 100, "height": 40}
          },
          "image": {"id": "` + imageID + `"}
        },
        {
          "id": "step-2",
          "action": {
            "phrases": ["Verify the order"],
            "action": {"type": "success", "successDescription": "Order placed", "isText": false}
          },
          "image": {"id": "` + imageID + `"}
        }
      ]
    }
  ]
}`)
}

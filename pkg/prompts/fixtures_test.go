package prompts

import "github.com/shouni/go-scene-prompt-kit/pkg/domain"

func demoProject() *domain.Project {
	return &domain.Project{
		ID:   "proj-1",
		Name: "Rooftop Showdown Demo",
		Characters: domain.Characters{
			{
				ID:   "ch-hero",
				Name: "Blue-haired girl",
				Role: domain.RoleProtagonist,
				Visual: domain.Visual{
					Gender:        "female",
					AgeApprox:     "late teens",
					HairColor:     "blue",
					HairStyle:     "short",
					EyeColor:      "blue",
					ClothingTags:  []string{"school uniform"},
					AccessoryTags: []string{"katana"},
				},
			},
			{
				ID:   "ch-enemy",
				Name: "Masked enemy",
				Role: domain.RoleAntagonist,
				Visual: domain.Visual{
					Gender:       "unknown",
					ClothingTags: []string{"long coat", "mask"},
				},
			},
		},
		World: &domain.World{
			GenreTags:            []string{"urban fantasy"},
			VisualAtmosphereTags: []string{"night city", "neon lights", "light rain"},
		},
	}
}

func demoGeometry() domain.GeometryComposition {
	return domain.GeometryComposition{
		Camera: domain.CameraSpec{
			ID:         "cam-1",
			Projection: domain.ProjectionPerspective,
			Eye:        domain.Vec(0, 5, 10),
			Target:     domain.Vec(0, 0, 0),
			Up:         domain.Vec(0, 1, 0),
			FovDeg:     45,
		},
		Objects: []domain.SceneObject{
			{
				ID:       "obj-hero",
				Type:     domain.ObjectTypeCharacter,
				RefID:    domain.StringPtr("ch-hero"),
				Label:    "Hero",
				Position: domain.Vec(-2, 0, 0),
				Rotation: domain.Vec(0, 45, 0),
				Scale:    domain.Vec(1, 1, 1),
				Layer:    1,
				PoseHint: &domain.PoseHint{Facing: "camera", Action: "draw_sword"},
			},
			{
				ID:       "obj-enemy",
				Type:     domain.ObjectTypeCharacter,
				RefID:    domain.StringPtr("ch-enemy"),
				Label:    "Enemy",
				Position: domain.Vec(2, 0, 0),
				Rotation: domain.Vec(0, -45, 0),
				Scale:    domain.Vec(1, 1, 1),
				Layer:    2,
				PoseHint: &domain.PoseHint{Facing: "camera", Action: "ready_to_attack"},
			},
		},
		Guides: []domain.Guide{},
	}
}

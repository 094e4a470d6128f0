package hospital

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"sanjudas/models"
)

// CatalogAPI is the slice of the backend the wizard's catalog loader consumes.
type CatalogAPI interface {
	ListSpecialties(ctx context.Context, token string) ([]models.Specialty, error)
	ListDoctorsBySpecialty(ctx context.Context, token, specialtyID string) ([]models.Doctor, error)
}

// specialtyDTO tolerates both the backend's field dialects.
type specialtyDTO struct {
	ID             FlexID `json:"id"`
	IDEspecialidad FlexID `json:"idEspecialidad"`
	Name           string `json:"name"`
	Nombre         string `json:"nombre"`
}

type doctorDTO struct {
	ID           FlexID `json:"id"`
	Nombre       string `json:"nombre"`
	ApellidoP    string `json:"apellidoP"`
	ApellidoM    string `json:"apellidoM"`
	FullName     string `json:"fullName"`
	Especialidad string `json:"especialidad"`
	SpecialtyID  FlexID `json:"specialtyId"`
	Consultorio  string `json:"consultorio"`
	Office       string `json:"office"`
}

// ListSpecialties fetches the specialty catalog.
func (c *Client) ListSpecialties(ctx context.Context, token string) ([]models.Specialty, error) {
	var raw []specialtyDTO
	if err := c.do(ctx, token, http.MethodGet, "/api/especialidades", nil, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]models.Specialty, 0, len(raw))
	for _, dto := range raw {
		sp := models.Specialty{
			ID:   firstID(dto.ID, dto.IDEspecialidad),
			Name: firstNonEmpty(dto.Nombre, dto.Name),
		}
		if sp.ID == "" {
			continue
		}
		if sp.Name == "" {
			sp.Name = "No disponible"
		}
		out = append(out, sp)
	}
	return out, nil
}

// ListDoctorsBySpecialty fetches the doctors offering a specialty.
func (c *Client) ListDoctorsBySpecialty(ctx context.Context, token, specialtyID string) ([]models.Doctor, error) {
	path := fmt.Sprintf("/api/especialidades/%s/doctores", specialtyID)
	var raw []doctorDTO
	if err := c.do(ctx, token, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]models.Doctor, 0, len(raw))
	for _, dto := range raw {
		d := models.Doctor{
			ID:          string(dto.ID),
			FullName:    firstNonEmpty(dto.FullName, joinName(dto.Nombre, dto.ApellidoP, dto.ApellidoM)),
			SpecialtyID: firstID(dto.SpecialtyID, FlexID(specialtyID)),
			Office:      firstNonEmpty(dto.Consultorio, dto.Office),
		}
		if d.ID == "" {
			continue
		}
		if d.FullName == "" {
			d.FullName = "No disponible"
		}
		if d.Office == "" {
			d.Office = "No disponible"
		}
		out = append(out, d)
	}
	return out, nil
}

func joinName(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstID(vals ...FlexID) string {
	for _, v := range vals {
		if v != "" {
			return string(v)
		}
	}
	return ""
}

package response

import "github.com/jinzhu/copier"

// copyAll maps each source view onto a fresh response value.
func copyAll[S any, D any](src []*S) ([]*D, error) {
	out := make([]*D, 0, len(src))
	for _, s := range src {
		var d D
		if err := copier.Copy(&d, s); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, nil
}

func copyOne[S any, D any](src *S) (*D, error) {
	var d D
	if err := copier.Copy(&d, src); err != nil {
		return nil, err
	}
	return &d, nil
}

package accounts

// File is the accounts provisioning file:
//
//	users:
//	  - username: root
//	    password: "{{HOMEDECK_VAR_ROOT_PASSWORD}}"
//	    role: admin
type File struct {
	Users []Account `yaml:"users"`
}

// Account is one entry of the provisioning file. Role defaults to "user".
type Account struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}
